// ABOUTME: Channel resolution chain for the episode aggregator
// ABOUTME: Explicit ID, then custom handle lookup, then display-name search

package episodes

import (
	"context"
	"net/url"
	"strings"

	coreerrors "daysgrimm-api/core/errors"
)

// DeriveCustomFromURL extracts a channel custom name from a channel URL.
// Supports the /@Handle and /c/Name path forms; returns empty when neither
// applies or the URL does not parse.
func DeriveCustomFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	if strings.HasPrefix(parts[0], "@") {
		return strings.TrimPrefix(parts[0], "@")
	}

	for i, p := range parts {
		if p == "c" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	return ""
}

// resolveChannelID determines the channel to aggregate, trying the configured
// identifier, then a custom-handle lookup, then a display-name search.
func (s *Service) resolveChannelID(ctx context.Context) (string, error) {
	if s.cfg.ChannelID != "" {
		return s.cfg.ChannelID, nil
	}

	custom := s.cfg.ChannelCustom
	if custom == "" {
		custom = DeriveCustomFromURL(s.cfg.ChannelURL)
	}
	if custom != "" {
		id, err := s.source.ChannelIDForUsername(ctx, custom)
		if err != nil {
			s.logWarn("Channel lookup by username failed", map[string]interface{}{
				"username": custom,
				"error":    err.Error(),
			})
		} else if id != "" {
			return id, nil
		}
	}

	for _, name := range s.cfg.SearchNames {
		id, err := s.source.SearchChannelByName(ctx, name)
		if err != nil {
			s.logWarn("Channel search failed", map[string]interface{}{
				"query": name,
				"error": err.Error(),
			})
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	return "", &coreerrors.ResolutionError{
		Target:  "channel",
		Message: "provide a channel ID or a custom handle",
	}
}
