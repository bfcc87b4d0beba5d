// Package buildinfo reports ldflags-injected build metadata.
package buildinfo

import "fmt"

// PrintBuildInfo reports the build stamp, substituting N/A for unset fields.
func PrintBuildInfo(version, date, commit string) {
	fmt.Printf("Build version: %s\n", orNA(version))
	fmt.Printf("Build date: %s\n", orNA(date))
	fmt.Printf("Build commit: %s\n", orNA(commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
