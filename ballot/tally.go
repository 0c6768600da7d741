// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

// Winner is the result of the most recent tally.
type Winner struct {
	ProposalID  uint64 `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

// tally scans proposals once in index order. A later proposal only takes the
// lead with a strictly greater count, so the lowest index reaching the maximum
// wins. tied reports whether more than one proposal holds that maximum.
func tally(proposals []Proposal) (w Winner, tied bool) {
	if len(proposals) == 0 {
		return Winner{}, false
	}
	w = Winner{ProposalID: 0, Description: proposals[0].Description, VoteCount: proposals[0].VoteCount}
	holders := 1
	for _, p := range proposals[1:] {
		switch {
		case p.VoteCount > w.VoteCount:
			w = Winner{ProposalID: p.ID, Description: p.Description, VoteCount: p.VoteCount}
			holders = 1
		case p.VoteCount == w.VoteCount:
			holders++
		}
	}
	return w, holders > 1
}
