package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugMaxLength   = 80
	slugMaxAttempts = 50
	slugFallback    = "item"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 生成 URL 友好的 slug，去除重音符号并以 - 连接
func Slugify(text string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		stripped = text
	}
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(stripped), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > slugMaxLength {
		slug = strings.TrimRight(slug[:slugMaxLength], "-")
	}
	if slug == "" {
		return slugFallback
	}
	return slug
}

// slugCounter 统计 slug 占用数量，excludeID 为当前记录
type slugCounter func(slug string) (int64, error)

// resolveSlug 显式 slug 必须唯一；未提供时由 fallbackText 生成并自动追加序号
func resolveSlug(explicit, fallbackText string, count slugCounter) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		slug := Slugify(explicit)
		n, err := count(slug)
		if err != nil {
			return "", err
		}
		if n > 0 {
			return "", ErrSlugExists
		}
		return slug, nil
	}
	return uniqueSlug(Slugify(fallbackText), count)
}

func uniqueSlug(base string, count slugCounter) (string, error) {
	candidate := base
	for attempt := 2; attempt <= slugMaxAttempts+1; attempt++ {
		n, err := count(candidate)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = withSlugSuffix(base, fmt.Sprintf("%d", attempt))
	}
	return withSlugSuffix(base, strings.ReplaceAll(uuid.NewString(), "-", "")[:8]), nil
}

func withSlugSuffix(base, suffix string) string {
	limit := slugMaxLength - len(suffix) - 1
	if len(base) > limit {
		base = strings.TrimRight(base[:limit], "-")
	}
	return base + "-" + suffix
}
