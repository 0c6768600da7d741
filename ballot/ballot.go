// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"sync"
	"time"
)

// Config holds construction-time settings for a Ballot.
type Config struct {
	// Administrator is the only principal allowed to manage the workflow.
	Administrator Principal
	// TestMode enables ResetForTesting. Leave false in production.
	TestMode bool
	// Sinks receive every event after it is appended to the log.
	Sinks []Sink
	// Now defaults to time.Now.
	Now func() time.Time
}

// Ballot is a single-organizer voting workflow. All methods are safe for
// concurrent use; mutations are serialized and readers see consistent state.
type Ballot struct {
	mu sync.RWMutex

	admin    Principal
	testMode bool
	sinks    []Sink
	now      func() time.Time

	phase     Phase
	voters    *voterRegistry
	proposals proposalRegistry
	access    accessControl
	winner    *Winner

	// events is never truncated, readers page through it with EventsPage
	events []Event
	seq    uint64
}

// New creates a ballot in the RegisteringVoters phase.
func New(cfg Config) (*Ballot, error) {
	if cfg.Administrator == "" {
		return nil, errors.New("administrator principal is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	b := &Ballot{
		admin:    cfg.Administrator,
		testMode: cfg.TestMode,
		sinks:    cfg.Sinks,
		now:      cfg.Now,
		phase:    RegisteringVoters,
	}
	b.resetState()
	return b, nil
}

func (b *Ballot) resetState() {
	b.voters = newVoterRegistry()
	b.proposals = proposalRegistry{}
	b.access = accessControl{admin: b.admin, voters: b.voters}
	b.winner = nil
}

// commit appends the events of a successful operation to the log and hands
// them to the sinks. Callers hold the write lock.
func (b *Ballot) commit(evs pending) {
	at := b.now()
	for _, ev := range evs {
		b.seq++
		ev.Seq = b.seq
		ev.At = at
		b.events = append(b.events, ev)
		for _, s := range b.sinks {
			s.Publish(ev)
		}
	}
}

// Administrator returns the fixed administrator principal.
func (b *Ballot) Administrator() Principal {
	return b.admin
}

// TestMode reports whether ResetForTesting is enabled.
func (b *Ballot) TestMode() bool {
	return b.testMode
}

// Status returns the current workflow phase.
func (b *Ballot) Status() Phase {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.phase
}

// RegisterVoter enrolls target. Only the administrator may call it, and only
// while voters are being registered.
func (b *Ballot) RegisterVoter(caller, target Principal) error {
	return b.RegisterVoters(caller, []Principal{target})
}

// RegisterVoters enrolls every target in order. If any target is already
// registered (or repeated in the batch) nothing is registered.
func (b *Ballot) RegisterVoters(caller Principal, targets []Principal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requirePhase("registerVoters", RegisteringVoters, b.phase, "voters registration is closed"); err != nil {
		return err
	}
	if err := b.access.requireAdministrator(caller); err != nil {
		return err
	}
	if err := b.voters.checkRegister(targets); err != nil {
		return err
	}

	var evs pending
	for _, p := range targets {
		b.voters.register(p)
		evs.voter(VoterRegistered, p)
	}
	b.commit(evs)
	return nil
}

// UnregisterVoter revokes target's eligibility. Any recorded vote is kept.
func (b *Ballot) UnregisterVoter(caller, target Principal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requirePhase("unregisterVoter", RegisteringVoters, b.phase, "voters registration is closed"); err != nil {
		return err
	}
	if err := b.access.requireAdministrator(caller); err != nil {
		return err
	}
	if target == "" {
		return ErrInvalidPrincipal
	}
	if err := b.voters.unregister(target); err != nil {
		return err
	}

	var evs pending
	evs.voter(VoterUnregistered, target)
	b.commit(evs)
	return nil
}

// Voter returns the record for target. Unknown principals get the
// unregistered default.
func (b *Ballot) Voter(target Principal) Voter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.voters.get(target)
}

// Voters lists every principal the registry has a record for.
func (b *Ballot) Voters() []Voter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.voters.list()
}

// RegisterProposal appends a proposal submitted by a registered voter and
// returns its index.
func (b *Ballot) RegisterProposal(caller Principal, description string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requirePhase("registerProposal", ProposalsRegistrationStarted, b.phase, "proposals registration is not open"); err != nil {
		return 0, err
	}
	if err := b.access.requireRegisteredVoter(caller); err != nil {
		return 0, err
	}
	id, err := b.proposals.add(description)
	if err != nil {
		return 0, err
	}

	var evs pending
	evs.proposal(ProposalRegistered, caller, id)
	b.commit(evs)
	return id, nil
}

// ProposalsCount returns the number of registered proposals.
func (b *Ballot) ProposalsCount() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.proposals.count()
}

// Proposal returns the proposal at index id.
func (b *Ballot) Proposal(id uint64) (Proposal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.proposals.get(id)
}

// Proposals returns a copy of every proposal in index order.
func (b *Ballot) Proposals() []Proposal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.proposals.list()
}

// StartProposalsRegistration opens proposal submission.
func (b *Ballot) StartProposalsRegistration(caller Principal) error {
	return b.Advance(caller, StartProposalsRegistration)
}

// EndProposalsRegistration fails with ErrNoProposals while the registry is empty.
func (b *Ballot) EndProposalsRegistration(caller Principal) error {
	return b.Advance(caller, EndProposalsRegistration)
}

// StartVotingSession opens voting.
func (b *Ballot) StartVotingSession(caller Principal) error {
	return b.Advance(caller, StartVotingSession)
}

// EndVotingSession closes voting. No more votes are accepted.
func (b *Ballot) EndVotingSession(caller Principal) error {
	return b.Advance(caller, EndVotingSession)
}

// CountVotes tallies the votes and moves the workflow to VotesTallied.
func (b *Ballot) CountVotes(caller Principal) error {
	return b.Advance(caller, CountVotes)
}

// Advance fires the named transition. It is the generic form of the
// Start*/End*/CountVotes methods.
func (b *Ballot) Advance(caller Principal, t Transition) error {
	_, _, err := b.Step(caller, t)
	return err
}

// Step is Advance that also reports the phases it moved between, read under
// the same lock as the transition.
func (b *Ballot) Step(caller Principal, t Transition) (from, to Phase, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	from = b.phase
	next, err := checkTransition(t, from)
	if err != nil {
		return from, from, err
	}
	if err := b.access.requireAdministrator(caller); err != nil {
		return from, from, err
	}

	var evs pending
	switch t {
	case EndProposalsRegistration:
		if b.proposals.count() == 0 {
			return from, from, ErrNoProposals
		}
	case CountVotes:
		w, tied := tally(b.proposals.items)
		b.winner = &w
		if tied {
			evs.tie()
		}
	}

	evs.phase(from, next)
	b.phase = next
	b.commit(evs)
	return from, next, nil
}

// Vote records caller's single vote for proposal id.
func (b *Ballot) Vote(caller Principal, id uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requirePhase("vote", VotingSessionStarted, b.phase, "voting session is not open"); err != nil {
		return err
	}
	if err := b.access.requireRegisteredVoter(caller); err != nil {
		return err
	}
	if b.voters.get(caller).HasVoted {
		return ErrAlreadyVoted
	}
	if err := b.proposals.addVote(id); err != nil {
		return err
	}
	b.voters.markVoted(caller, id)

	var evs pending
	evs.proposal(Voted, caller, id)
	b.commit(evs)
	return nil
}

// Winner returns the cached tally result.
func (b *Ballot) Winner() (Winner, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.phase != VotesTallied || b.winner == nil {
		return Winner{}, ErrVotesNotTallied
	}
	return *b.winner, nil
}

// Events returns the logged events with a sequence number greater than since.
func (b *Ballot) Events(since uint64) []Event {
	evs, _ := b.EventsPage(since, 0)
	return evs
}

// EventsPage returns at most limit logged events with a sequence number
// greater than since, and whether more follow. A limit of 0 means no limit.
func (b *Ballot) EventsPage(since uint64, limit int) ([]Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// seq starts at 1 and is dense, so the slice index is seq-1
	if since >= uint64(len(b.events)) {
		return []Event{}, false
	}
	rest := b.events[since:]
	more := false
	if limit > 0 && len(rest) > limit {
		rest, more = rest[:limit], true
	}
	out := make([]Event, len(rest))
	copy(out, rest)
	return out, more
}

// ResetForTesting returns the workflow to RegisteringVoters and clears the
// voter and proposal registries and the cached winner. It is not part of the
// production workflow and fails with ErrResetDisabled unless the ballot was
// created with TestMode.
func (b *Ballot) ResetForTesting(caller Principal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.testMode {
		return ErrResetDisabled
	}
	if err := b.access.requireAdministrator(caller); err != nil {
		return err
	}

	old := b.phase
	b.phase = RegisteringVoters
	b.resetState()

	var evs pending
	if old != RegisteringVoters {
		evs.phase(old, RegisteringVoters)
	}
	b.commit(evs)
	return nil
}

// Snapshot is a consistent view of the whole ballot.
type Snapshot struct {
	Administrator Principal  `json:"administrator"`
	Phase         Phase      `json:"phase"`
	Voters        []Voter    `json:"voters"`
	Proposals     []Proposal `json:"proposals"`
	Winner        *Winner    `json:"winner,omitempty"`
	VotesCast     uint64     `json:"votes_cast"`
}

// Snapshot returns the current state under a single read lock.
func (b *Ballot) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := Snapshot{
		Administrator: b.admin,
		Phase:         b.phase,
		Voters:        b.voters.list(),
		Proposals:     b.proposals.list(),
		VotesCast:     b.voters.votedCount(),
	}
	if b.winner != nil {
		w := *b.winner
		s.Winner = &w
	}
	return s
}
