package distmatrix_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/meshpatch/distmatrix"
	"github.com/katalvlaran/meshpatch/mesh"
)

// ExampleBuild builds the all-pairs matrix of a cube and caches it on disk.
func ExampleBuild() {
	m, _ := mesh.NewCube(1)

	mat, err := distmatrix.Build(context.Background(), m, distmatrix.WithWorkers(2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	d, _ := mat.At(1, 4)
	fmt.Printf("%dx%d, d(1,4)=%.1f\n", mat.Rows(), mat.Cols(), d)

	dir, _ := os.MkdirTemp("", "distmatrix")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "cube.dm")
	if err := mat.Save(path, distmatrix.WithCompression(distmatrix.CompressionZSTD)); err != nil {
		fmt.Println("error:", err)
		return
	}
	back, _ := distmatrix.LoadFile(path)
	fmt.Println("round trip equal:", back.Equal(mat))
	// Output:
	// 8x8, d(1,4)=3.0
	// round trip equal: true
}
