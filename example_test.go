package meshpatch_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/meshpatch"
	"github.com/katalvlaran/meshpatch/logging"
	"github.com/katalvlaran/meshpatch/mesh"
)

// ExampleExtractor_Run builds three nested patches around every cube corner.
func ExampleExtractor_Run() {
	cube, _ := mesh.NewCube(1)

	cfg := meshpatch.DefaultConfig()
	cfg.MinRadius, cfg.MaxRadius, cfg.PatchCount = 0.5, 1.5, 3

	e, err := meshpatch.NewExtractor(cfg, meshpatch.WithLogger(logging.NoopLogger()))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	out, err := e.Run(context.Background(), cube)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range out.Patches[1] {
		fmt.Println(len(p))
	}
	// Output:
	// 1
	// 4
	// 4
}
