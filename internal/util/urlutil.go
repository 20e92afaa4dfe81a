package util

import (
	"errors"
	"regexp"
	"strings"

	"ytcatalog/internal/model"
)

// ErrEmptyInput is returned when no channel reference was supplied.
var ErrEmptyInput = errors.New("no channel URL provided")

// token matches the characters allowed in handles, custom names and IDs.
const token = `[\p{L}\p{N}_-]+`

var refPatterns = []struct {
	kind model.RefKind
	re   *regexp.Regexp
}{
	{model.RefHandle, regexp.MustCompile(`@(` + token + `)`)},
	{model.RefID, regexp.MustCompile(`/channel/(UC` + token + `)`)},
	{model.RefCustom, regexp.MustCompile(`/c/(` + token + `)`)},
	{model.RefUser, regexp.MustCompile(`/user/(` + token + `)`)},
}

// ParseChannelRef classifies a channel URL or bare identifier. Handles win over
// /channel/, /c/ and /user/ paths; anything unrecognized is taken as a literal ID.
func ParseChannelRef(raw string) (model.ChannelRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.ChannelRef{}, ErrEmptyInput
	}
	for _, p := range refPatterns {
		if m := p.re.FindStringSubmatch(raw); m != nil {
			return model.ChannelRef{Kind: p.kind, Value: m[1]}, nil
		}
	}
	return model.ChannelRef{Kind: model.RefID, Value: raw}, nil
}
