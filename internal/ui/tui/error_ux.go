package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/shipquote/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "yamlorder") {
				return "Order file not found"
			}
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if field := extractField(err.Error()); field != "" {
				return "Invalid " + field + " in " + base
			}
			return "Invalid config"

		case domain.KindEmptyOrder:
			return "Order has no products"
		case domain.KindInvalidDistance:
			return "Distance must be a finite number >= 0"
		case domain.KindInvalidProduct:
			return "Invalid product"
		case domain.KindUnknownShipping:
			return "Unknown shipping method"
		case domain.KindCorruptStore:
			return "Order store is corrupt (see store.on_corrupt)"
		case domain.KindIO:
			return "Could not access the order store"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

// extractField pulls "products[1].name" out of "... field products[1].name: ...".
func extractField(s string) string {
	i := strings.LastIndex(s, "field ")
	if i < 0 {
		return ""
	}
	part := s[i+len("field "):]
	if j := strings.Index(part, ":"); j >= 0 {
		part = part[:j]
	}
	return strings.TrimSpace(part)
}
