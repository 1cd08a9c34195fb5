// Package workers provides utilities for determining worker pool sizes
// in containerized environments.
//
// Go 1.19+ sets GOMAXPROCS from container CPU limits, while
// runtime.NumCPU() still reports the host machine's CPU count. The
// helpers here size pools from GOMAXPROCS so batch stages respect
// cgroup limits, with an operator override via the PIPELINE_WORKERS
// environment variable.
package workers
