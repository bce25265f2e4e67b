package prefabs

import (
	"os"
	"path/filepath"
)

func readDisk(clean string) ([]byte, error) {
	return os.ReadFile(diskPrefabPath(clean))
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
