package composecmd

import (
	"envkit/cli/envctl/internal/cmdregistry"
	"envkit/cli/envctl/internal/compose"
	runner "envkit/cli/envctl/internal/runner"
)

// Register adds the lifecycle commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "setup",
		Summary: "Start the local environment (detached, removing orphans)",
		Handler: handleSetup,
	})
	r.Register(cmdregistry.Command{
		Name:    "destroy",
		Summary: "Tear down the local environment and its volumes immediately",
		Handler: handleDestroy,
	})
}

func handleSetup(ctx *cmdregistry.Context) (int, error) {
	return runCompose(ctx, compose.UpArgs())
}

func handleDestroy(ctx *cmdregistry.Context) (int, error) {
	return runCompose(ctx, compose.DownArgs())
}

func runCompose(ctx *cmdregistry.Context, fixed []string) (int, error) {
	args := append(fixed, ctx.Args...)
	res := runner.Compose(ctx.Ctx, ctx.Runner, args...)
	return res.Code, res.Err
}
