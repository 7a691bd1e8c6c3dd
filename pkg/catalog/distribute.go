package catalog

import "github.com/zentures/cityhash"

// Distribute splits paths across numWorkers buckets by the CityHash64 of
// each path, so a rerun over the same file set and worker count always
// reproduces the same assignment regardless of the order the filesystem
// walk visited them in.
func Distribute(paths []string, numWorkers int) [][]string {
	if numWorkers < 1 {
		numWorkers = 1
	}
	buckets := make([][]string, numWorkers)
	for _, p := range paths {
		h := cityhash.New64()
		h.Write([]byte(p))
		worker := int(h.Sum64() % uint64(numWorkers))
		buckets[worker] = append(buckets[worker], p)
	}
	return buckets
}
