// Package protection implements the content filter: domain and keyword blocklists by
// protection level, PIN-guarded settings changes and block history.
package protection

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/lifetrack/internal/constants"
)

var adultDomains = []string{
	"pornhub.com", "xvideos.com", "xnxx.com", "redtube.com", "youporn.com", "xhamster.com",
	"brazzers.com", "chaturbate.com", "adultfriendfinder.com", "livejasmin.com", "cam4.com",
	"myfreecams.com", "spankbang.com", "youjizz.com", "tube8.com", "beeg.com", "sunporno.com",
	"eporner.com", "motherless.com", "redwap.com", "xtube.com", "cliphunter.com", "hclips.com",
	"xmoov.com", "kpopporno.com", "alohatube.com", "exporntoons.net", "4tube.com", "porn.com",
	"hentai.com",
}

var datingDomains = []string{
	"tinder.com", "bumble.com", "match.com", "okcupid.com", "hinge.co", "grindr.com",
	"happn.com", "plentyoffish.com", "pof.com", "zoosk.com", "eharmony.com",
}

var gamblingDomains = []string{
	"bet365.com", "draftkings.com", "fanduel.com", "pokerstars.com", "bovada.lv", "betway.com",
	"williamhill.com", "888casino.com", "betfair.com", "ladbrokes.com",
}

var proxyDomains = []string{
	"hidemyass.com", "nordvpn.com", "expressvpn.com", "protonvpn.com", "surfshark.com",
	"cyberghostvpn.com", "privateinternetaccess.com", "hotspotshield.com", "tunnelbear.com",
}

var gamingDomains = []string{
	"twitch.tv", "steam.com", "epicgames.com", "roblox.com", "discord.com", "discord.gg",
	"battle.net", "minecraft.net", "fortnite.com",
}

var streamingDomains = []string{
	"netflix.com", "hulu.com", "disneyplus.com", "primevideo.com", "hbodude.com", "hbomax.com",
	"max.com", "crunchyroll.com", "funimation.com",
}

var socialDomains = []string{
	"facebook.com", "instagram.com", "twitter.com", "x.com", "tiktok.com", "snapchat.com",
	"reddit.com", "pinterest.com", "linkedin.com", "tumblr.com",
}

// Vital blocking always covers adult sites and X/Twitter, whatever the level.
var vitalDomains = concat(adultDomains, []string{"twitter.com", "x.com", "t.co", "x.co"})

var (
	lightKeywords  = []string{"porn", "xxx", "sex", "nude", "naked", "nsfw", "erotic"}
	strongKeywords = concat(lightKeywords, []string{
		"escort", "hookup", "dating", "onlyfans", "strip club", "stripper", "cam show",
	})
	strictKeywords = concat(strongKeywords, []string{
		"hot singles", "meet now", "cam girl", "live chat", "gambling", "betting", "casino",
	})
)

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Result is the outcome of a filter check.
type Result struct {
	Blocked        bool   `json:"blocked"`
	Reason         string `json:"reason,omitempty"`
	MatchedKeyword string `json:"matchedKeyword,omitempty"`
	MatchedDomain  string `json:"matchedDomain,omitempty"`
}

// DomainsFor returns the built-in domain blocklist for a level.
func DomainsFor(level constants.ProtectionLevel) []string {
	switch level {
	case constants.ProtectionLight:
		return concat(adultDomains)
	case constants.ProtectionStrong:
		return concat(adultDomains, datingDomains, gamblingDomains, proxyDomains)
	case constants.ProtectionStrict:
		return concat(adultDomains, datingDomains, gamblingDomains, proxyDomains,
			gamingDomains, streamingDomains, socialDomains)
	default:
		return nil
	}
}

// KeywordsFor returns the built-in keyword blocklist for a level.
func KeywordsFor(level constants.ProtectionLevel) []string {
	switch level {
	case constants.ProtectionLight:
		return lightKeywords
	case constants.ProtectionStrong:
		return strongKeywords
	case constants.ProtectionStrict:
		return strictKeywords
	default:
		return nil
	}
}

// keywordLevel is the level whose keywords apply; vital blocking raises off to light.
func keywordLevel(level constants.ProtectionLevel, vital bool) constants.ProtectionLevel {
	if vital && level == constants.ProtectionOff {
		return constants.ProtectionLight
	}
	return level
}

// IsURL reports whether s parses as an absolute URL with a host.
func IsURL(s string) bool {
	_, ok := hostOf(s)
	return ok
}

func hostOf(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	return strings.Replace(host, "www.", "", 1), true
}

// hostMatches matches in both directions so subdomains and bare parents are caught.
func hostMatches(host, domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	return strings.Contains(host, domain) || strings.Contains(domain, host)
}

// CheckURL checks a URL against vital blocking, the level and custom domains, then
// against the level's keywords. Strings that are not absolute URLs fall back to a
// substring search for blocked domains.
func CheckURL(raw string, level constants.ProtectionLevel, customDomains []string, vital bool) Result {
	host, ok := hostOf(raw)
	if !ok {
		return checkDomainText(raw, level, customDomains, vital)
	}

	if vital {
		for _, d := range vitalDomains {
			if hostMatches(host, d) {
				return Result{
					Blocked:       true,
					Reason:        "Content blocked by Vital Protection (Adult/X-Twitter Restriction)",
					MatchedDomain: d,
				}
			}
		}
	}

	for _, d := range concat(DomainsFor(level), customDomains) {
		if hostMatches(host, d) {
			return Result{
				Blocked:       true,
				Reason:        fmt.Sprintf("Domain %q is blocked at %s protection level", d, level),
				MatchedDomain: d,
			}
		}
	}

	lower := strings.ToLower(raw)
	for _, k := range KeywordsFor(keywordLevel(level, vital)) {
		if strings.Contains(lower, k) {
			return Result{
				Blocked:        true,
				Reason:         fmt.Sprintf("URL contains blocked keyword: %q", k),
				MatchedKeyword: k,
			}
		}
	}
	return Result{}
}

func checkDomainText(raw string, level constants.ProtectionLevel, customDomains []string, vital bool) Result {
	lower := strings.ToLower(raw)
	if vital {
		for _, d := range vitalDomains {
			if strings.Contains(lower, d) {
				return Result{
					Blocked:       true,
					Reason:        fmt.Sprintf("Vital Protection: Blocked domain %q detected", d),
					MatchedDomain: d,
				}
			}
		}
	}
	for _, d := range concat(DomainsFor(level), customDomains) {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && strings.Contains(lower, d) {
			return Result{
				Blocked:       true,
				Reason:        fmt.Sprintf("Text contains blocked domain: %q", d),
				MatchedDomain: d,
			}
		}
	}
	return Result{}
}

// CheckKeywords checks free text against the level's keywords plus custom keywords.
func CheckKeywords(text string, level constants.ProtectionLevel, customKeywords []string, vital bool) Result {
	lower := strings.ToLower(text)
	for _, k := range concat(KeywordsFor(keywordLevel(level, vital)), customKeywords) {
		needle := strings.ToLower(strings.TrimSpace(k))
		if needle != "" && strings.Contains(lower, needle) {
			return Result{
				Blocked:        true,
				Reason:         fmt.Sprintf("Content contains blocked keyword: %q", k),
				MatchedKeyword: k,
			}
		}
	}
	return Result{}
}
