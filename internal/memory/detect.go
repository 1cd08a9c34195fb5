package memory

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// detectSystemMemory returns total system memory in bytes, or 0 if it
// cannot be determined. Only /proc/meminfo is consulted; on platforms
// without it the caller falls back to running with no limit.
func detectSystemMemory() int64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}
