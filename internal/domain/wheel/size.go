package wheel

import "fmt"

// sizeSuffixes are the units HumanSize steps through, 1024 apart.
var sizeSuffixes = []string{"B", "KB", "MB", "GB", "TB"}

// HumanSize renders a byte count for humans: whole bytes below 1 KB
// ("512 B"), one decimal above ("1.5 KB"), capped at TB.
func HumanSize(bytes int64) string {
	size := float64(bytes)

	for i, suffix := range sizeSuffixes {
		if size < 1024 || i == len(sizeSuffixes)-1 {
			if suffix == "B" {
				return fmt.Sprintf("%d B", int64(size))
			}

			return fmt.Sprintf("%.1f %s", size, suffix)
		}

		size /= 1024
	}

	return fmt.Sprintf("%d B", bytes)
}
