// Package urlutil provides URL parsing utilities.
package urlutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractSubjectNumber extracts the issue/PR number from a subject API URL.
func ExtractSubjectNumber(apiURL string) (int, error) {
	// URL format: https://api.github.com/repos/owner/repo/issues/123
	// or: https://api.github.com/repos/owner/repo/pulls/123
	parts := strings.Split(apiURL, "/")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid API URL format: %s", apiURL)
	}

	numStr := parts[len(parts)-1]
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("failed to parse subject number from URL %s: %w", apiURL, err)
	}

	return num, nil
}

// SplitRepoFullName splits an "owner/repo" name into its parts.
func SplitRepoFullName(fullName string) (owner, repo string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name: %s", fullName)
	}
	return parts[0], parts[1], nil
}
