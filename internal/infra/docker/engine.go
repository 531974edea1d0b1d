package docker

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	typesimage "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

type containerEngine struct {
	cli dockerClient
	cfg Config

	pullMu sync.Mutex
	pulled bool
}

func newContainerEngine(cli dockerClient, cfg Config) *containerEngine {
	return &containerEngine{
		cli: cli,
		cfg: cfg.withDefaults(),
	}
}

func (c *containerEngine) ensureImage(ctx context.Context) error {
	c.pullMu.Lock()
	defer c.pullMu.Unlock()

	if c.pulled {
		return nil
	}
	if err := c.pullImage(ctx, c.cfg.Image); err != nil {
		return err
	}
	c.pulled = true
	return nil
}

func (c *containerEngine) pullImage(ctx context.Context, ref string) error {
	reader, err := c.cli.ImagePull(ctx, ref, typesimage.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", ref, err)
	}
	defer reader.Close()
	_, err = io.Copy(io.Discard, reader)
	if err != nil {
		return fmt.Errorf("consume pull output for %s: %w", ref, err)
	}
	return nil
}

func (c *containerEngine) createContainer(ctx context.Context, hostDir string, cmd []string) (string, func(), error) {
	hostConfig := &container.HostConfig{
		Binds: []string{hostDir + ":" + c.cfg.Workdir},
	}
	if c.cfg.MemoryLimitBytes > 0 {
		hostConfig.Resources.Memory = c.cfg.MemoryLimitBytes
		hostConfig.Resources.MemorySwap = c.cfg.MemoryLimitBytes
	}

	resp, err := c.cli.ContainerCreate(
		ctx,
		&container.Config{
			Image:        c.cfg.Image,
			Cmd:          cmd,
			User:         c.cfg.User,
			AttachStdout: true,
			AttachStderr: true,
			WorkingDir:   c.cfg.Workdir,
		},
		hostConfig,
		nil,
		nil,
		"",
	)
	if err != nil {
		return "", nil, fmt.Errorf("create container: %w", err)
	}

	cleanup := func() {
		_ = c.cli.ContainerRemove(context.Background(), resp.ID, container.RemoveOptions{Force: true})
	}

	return resp.ID, cleanup, nil
}

func (c *containerEngine) start(ctx context.Context, containerID string) error {
	if err := c.cli.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return fmt.Errorf("start container: %w", err)
	}
	return nil
}

func (c *containerEngine) waitForExit(ctx context.Context, containerID string) (*container.WaitResponse, error) {
	statusCh, errCh := c.cli.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case status := <-statusCh:
		if status.Error != nil {
			return nil, fmt.Errorf("container error: %s", status.Error.Message)
		}
		return &status, nil
	case err := <-errCh:
		return nil, fmt.Errorf("wait for container: %w", err)
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for container: %w", ctx.Err())
	}
}

// stop is used once the caller's context is gone, so it runs on its own deadline.
func (c *containerEngine) stop(containerID string) error {
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.cli.ContainerStop(stopCtx, containerID, container.StopOptions{}); err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("stop container: %w", err)
	}
	return nil
}

func (c *containerEngine) oomKilled(ctx context.Context, containerID string) (bool, error) {
	inspect, err := c.cli.ContainerInspect(ctx, containerID)
	if err != nil {
		return false, fmt.Errorf("inspect container: %w", err)
	}
	return inspect.ContainerJSONBase != nil && inspect.State != nil && inspect.State.OOMKilled, nil
}

func (c *containerEngine) copyLogs(ctx context.Context, containerID string) error {
	logs, err := c.cli.ContainerLogs(ctx, containerID, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}
	defer logs.Close()

	if _, err := stdcopy.StdCopy(c.cfg.Stdout, c.cfg.Stderr, logs); err != nil {
		return fmt.Errorf("copy logs: %w", err)
	}
	return nil
}
