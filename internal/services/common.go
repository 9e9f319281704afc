package services

import (
	"strings"
	"time"
)

// minDeleteReasonLen is the deliberate friction on destructive reasons.
const minDeleteReasonLen = 20

func blankReason(reason string) bool {
	return strings.TrimSpace(reason) == ""
}

func shortReason(reason string) bool {
	return len(strings.TrimSpace(reason)) < minDeleteReasonLen
}

func secondsToDuration(s uint64) time.Duration {
	return time.Duration(s) * time.Second
}
