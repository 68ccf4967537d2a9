package miner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tonguys/ton-miner-client/params"
	"github.com/tonguys/ton-miner-client/pool"
)

// terminationGrace bounds how long Run waits for a killed child to actually
// exit before giving up on it; zombies are tolerated over a deadlocked caller.
const terminationGrace = time.Second

// Process spawns one miner child bound to one device, captures its
// stdout/stderr, enforces the task's deadline, and reads the artifact file
// it produces on success.
type Process struct {
	MinerPath   string
	BoostFactor int
	Device      int
	WorkDir     string

	// extraArgs and env let tests re-exec the test binary itself as a stub
	// miner child instead of a real pow-miner-cuda executable. Both are nil
	// in production use.
	extraArgs []string
	env       []string

	log log.Logger
}

// NewProcess builds a Process for one device. workDir is the directory the
// child runs in and where its artifact file is looked for; an empty workDir
// means the current process's working directory.
func NewProcess(minerPath string, boostFactor, device int, workDir string) *Process {
	return &Process{
		MinerPath:   minerPath,
		BoostFactor: boostFactor,
		Device:      device,
		WorkDir:     workDir,
		log:         log.New("name", "process", "thread", device),
	}
}

// Run spawns the miner child for task, waits until ctx is done (the caller
// derives ctx from task.Expires) or the child exits, and returns the single
// ExecOutcome describing what happened. Run never panics past its boundary.
func (p *Process) Run(ctx context.Context, task Task) (outcome ExecOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("panic while running miner child", "recover", r)
			outcome = Crash{Msg: fmt.Sprintf("panic: %v", r), Code: 0}
		}
	}()

	resultFile := params.MinedArtifact
	argv, err := task.argv(p.Device, p.BoostFactor, resultFile)
	if err != nil {
		p.log.Error("failed to build argv", "err", err)
		return Crash{Msg: err.Error(), Code: 0}
	}

	cmd := exec.Command(p.MinerPath, append(append([]string{}, p.extraArgs...), argv...)...)
	cmd.Dir = p.WorkDir
	cmd.Stdin = nil
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.WaitDelay = terminationGrace
	if len(p.env) > 0 {
		cmd.Env = append(os.Environ(), p.env...)
	}

	if err := cmd.Start(); err != nil {
		p.log.Error("failed to start miner child", "err", err)
		return Crash{Msg: err.Error(), Code: 0}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		p.killGroup(cmd.Process.Pid)
		select {
		case <-done:
		case <-time.After(terminationGrace):
			p.log.Warn("miner child did not exit after kill", "device", p.Device)
		}
		p.log.Warn("miner child timed out", "device", p.Device)
		return Timeout{}
	}

	if waitErr != nil {
		exitErr, ok := waitErr.(*exec.ExitError)
		if !ok {
			p.log.Error("failed waiting for miner child", "err", waitErr)
			return Crash{Msg: waitErr.Error(), Code: 0}
		}
		p.log.Warn("miner child exited non-zero", "code", exitErr.ExitCode(), "stderr", stderr.String())
		return Crash{Msg: "non-zero exit", Code: exitErr.ExitCode()}
	}

	artifactPath := resultFile
	if p.WorkDir != "" {
		artifactPath = filepath.Join(p.WorkDir, resultFile)
	}
	boc, err := os.ReadFile(artifactPath)
	if err != nil {
		p.log.Error("artifact file missing after zero exit", "path", artifactPath, "err", err)
		return Crash{Msg: "can't locate artifact file", Code: -1}
	}

	return Ok{Answer: pool.Answer{GiverAddress: task.GiverAddress, Boc: boc}}
}

// killGroup terminates the child's whole process group, tolerating a short
// grace period before accepting a zombie over a hang.
func (p *Process) killGroup(pid int) {
	if pid <= 0 {
		return
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		p.log.Debug("process group already gone", "pid", pid, "err", err)
	}
	time.Sleep(terminationGrace)
}
