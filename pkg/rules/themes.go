// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rules

import (
	"sort"
	"strings"
)

// DefaultThemeName is used when the configured theme is blank or unknown.
const DefaultThemeName = "neon"

// Theme is a named flavor pack: chat prefix, join greeting and netrun line templates.
type Theme struct {
	Name        string
	Prefix      string
	JoinMessage string
	Messages    Messages
}

// Messages groups the netrun line templates. Each line may carry {key} tokens
// filled by ApplyTokens.
type Messages struct {
	Start    []string
	Success  []string
	Fail     []string
	Cooldown []string
	Hint     []string
}

// BuiltinThemes returns a fresh copy of the shipped themes keyed by name.
func BuiltinThemes() map[string]Theme {
	return map[string]Theme{
		"neon": {
			Name:        "neon",
			Prefix:      "[NeonEcho]",
			JoinMessage: "NeonEcho online. Welcome back, runner. Type /netrun to sync.",
			Messages: Messages{
				Start: []string{
					"Netrun handshake ready. Tier {tier} | Risk {risk}.",
					"Stage {stage}/{stages}. Code {code}. {seconds}s to breach.",
				},
				Success: []string{
					"Breach confirmed. Cred injected: +{cred}.",
					"Tier {tier} | Risk {risk}. Streak {streak}.",
					"Trace cooled. Cooldown {cooldown}s.",
				},
				Fail: []string{
					"ICE spiked the line. Signal dropped.",
					"Cooldown {cooldown}s before retry.",
				},
				Cooldown: []string{"Netrun rig cooling. {cooldown}s remaining."},
				Hint:     []string{"Active netrun detected. Stage {stage}/{stages}. Code {code}, {seconds}s left."},
			},
		},
		"chrome": {
			Name:        "chrome",
			Prefix:      "[NeonEcho//Chrome]",
			JoinMessage: "Chrome deck synced. Type /netrun to jack in.",
			Messages: Messages{
				Start: []string{
					"Chrome handshake ready. Tier {tier} | Risk {risk}.",
					"Stage {stage}/{stages}. Run /netrun {code} within {seconds}s.",
				},
				Success: []string{
					"Access granted. Cred payout: +{cred}.",
					"Tier {tier} | Risk {risk}. Streak {streak}.",
					"Cooldown engaged: {cooldown}s.",
				},
				Fail: []string{
					"Access denied. ICE triggered.",
					"Cooldown engaged: {cooldown}s.",
				},
				Cooldown: []string{"Deck cooling. {cooldown}s remaining."},
				Hint:     []string{"Chrome netrun active. Stage {stage}/{stages}. Code {code}, {seconds}s left."},
			},
		},
		"ghost": {
			Name:        "ghost",
			Prefix:      "[NeonEcho.GHOST]",
			JoinMessage: "Ghost channel active. Type /netrun to breach.",
			Messages: Messages{
				Start: []string{
					"Ghost line open. Tier {tier} | Risk {risk}.",
					"Stage {stage}/{stages}. Type /netrun {code} within {seconds}s.",
				},
				Success: []string{
					"Ghost breach complete. Cred +{cred}.",
					"Tier {tier} | Risk {risk}. Streak {streak}.",
					"Shadows reset in {cooldown}s.",
				},
				Fail: []string{
					"Ghost line rejected.",
					"Shadows reset in {cooldown}s.",
				},
				Cooldown: []string{"Ghost deck cooling. {cooldown}s left."},
				Hint:     []string{"Ghost netrun active. Stage {stage}/{stages}. Code {code}, {seconds}s left."},
			},
		},
	}
}

// ResolveTheme looks a theme up by trimmed, case-insensitive name and falls
// back to the neon theme.
func ResolveTheme(name string) Theme {
	themes := BuiltinThemes()
	if theme, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return theme
	}
	return themes[DefaultThemeName]
}

// ThemeNames lists the built-in theme names in sorted order.
func ThemeNames() []string {
	themes := BuiltinThemes()
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTokens replaces every {key} in template with its value.
func ApplyTokens(template string, tokens map[string]string) string {
	if len(tokens) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(tokens)*2)
	for key, value := range tokens {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Render applies tokens to each line.
func Render(lines []string, tokens map[string]string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ApplyTokens(line, tokens)
	}
	return out
}
