// Package cmd provides helpers for executing external commands with proper error handling.
//
// RunContext and OutputContext wrap [os/exec.Cmd] to capture stderr and use
// it as the error message, so a failing git invocation reports what git said
// instead of "exit status 128". ShellContext runs a composed command line
// through "sh -c" and streams its output to caller-supplied writers; it is
// how formatter commands from the task table are executed.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, root, "git", "add", "--", "a.json"); err != nil {
//	    return fmt.Errorf("restage: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, root, "git", "diff", "--cached", "--name-only")
//
//	err = cmd.ShellContext(ctx, cmd.Shell{Dir: root, Stdout: &buf, Stderr: &buf},
//	    "prettier --write a.json")
//
// Every call is traced through the context logger when verbose is enabled.
package cmd
