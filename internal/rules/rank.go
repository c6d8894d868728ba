package rules

import (
	"strings"

	"bidding/models"
)

// Organizational ranks, entry-level staff (1) through CEO (7).
// 0 is the "unknown" sentinel and carries no authority.
const (
	RankNone                 = 0
	RankStaff                = 1
	RankAssistantManager     = 2
	RankManager              = 3
	RankDeputyGeneralManager = 4
	RankGeneralManager       = 5
	RankDirector             = 6
	RankCEO                  = 7
)

// rankKeywords maps title keywords to ranks. Order matters: more specific
// keywords come before their substrings ("deputy general manager" before
// "general manager" before "manager", "assistant manager" likewise), so a
// single in-order scan picks the right rank.
var rankKeywords = []struct {
	keyword string
	rank    int
}{
	{"대표", RankCEO},
	{"ceo", RankCEO},
	{"president", RankCEO},
	{"이사", RankDirector},
	{"director", RankDirector},
	{"차장", RankDeputyGeneralManager},
	{"deputy general manager", RankDeputyGeneralManager},
	{"부장", RankGeneralManager},
	{"general manager", RankGeneralManager},
	{"대리", RankAssistantManager},
	{"assistant manager", RankAssistantManager},
	{"과장", RankManager},
	{"manager", RankManager},
	{"사원", RankStaff},
	{"staff", RankStaff},
}

// ResolveRank derives the numeric rank of a principal. Resolution order:
// explicit numeric hint, title keyword, display-name keyword (names often
// embed a title, e.g. "구매팀 과장1"). Anything unresolved degrades to
// RankNone rather than erroring, so missing metadata always means
// minimal privilege.
func ResolveRank(p models.Principal) int {
	if p.RankHint >= RankStaff && p.RankHint <= RankCEO {
		return p.RankHint
	}
	if r := rankFromText(p.TitleText); r != RankNone {
		return r
	}
	return rankFromText(p.DisplayName)
}

func rankFromText(text string) int {
	if text == "" {
		return RankNone
	}
	lowered := strings.ToLower(text)
	for _, entry := range rankKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.rank
		}
	}
	return RankNone
}
