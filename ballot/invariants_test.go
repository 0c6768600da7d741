// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
)

func checkInvariants(t *testing.T, b *Ballot) {
	t.Helper()
	b.mu.RLock()
	defer b.mu.RUnlock()

	if votes, voted := b.proposals.totalVotes(), b.voters.votedCount(); votes != voted {
		t.Fatalf("sum of vote counts %d != voters who voted %d", votes, voted)
	}
	for p, v := range b.voters.records {
		if v.HasVoted && v.VotedProposalID >= b.proposals.count() {
			t.Fatalf("%s voted for missing proposal %d", p, v.VotedProposalID)
		}
	}
	if b.phase > ProposalsRegistrationStarted && b.proposals.count() == 0 {
		t.Fatalf("phase %s reached with no proposals", b.phase)
	}
}

// TestRandomOperationsKeepInvariants drives the ballot with random calls from
// random principals and checks the invariants after every call.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	principals := []Principal{admin, voter1, voter2, voter3, nonVoter, "0xv5", "0xv6"}
	transitionsInOrder := []Transition{StartProposalsRegistration, EndProposalsRegistration, StartVotingSession, EndVotingSession, CountVotes}

	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			b := newTestBallot(t)
			pick := func() Principal { return principals[rng.Intn(len(principals))] }
			lastPhase := b.Status()

			for i := 0; i < 400; i++ {
				caller := pick()
				switch rng.Intn(8) {
				case 0:
					_ = b.RegisterVoter(caller, pick())
				case 1:
					_ = b.RegisterVoters(caller, []Principal{pick(), pick()})
				case 2:
					_ = b.UnregisterVoter(caller, pick())
				case 3:
					_, _ = b.RegisterProposal(caller, fmt.Sprintf("proposal %d", i))
				case 4, 5:
					before := b.Voter(caller)
					err := b.Vote(caller, uint64(rng.Intn(4)))
					if before.HasVoted && !errors.Is(err, ErrAlreadyVoted) && b.Status() == VotingSessionStarted && before.Registered {
						t.Fatalf("second vote by %s returned %v", caller, err)
					}
				case 6:
					_ = b.Advance(caller, transitionsInOrder[rng.Intn(len(transitionsInOrder))])
				case 7:
					if rng.Intn(20) == 0 {
						if err := b.ResetForTesting(caller); err == nil {
							lastPhase = RegisteringVoters
						}
					}
				}

				checkInvariants(t, b)
				if now := b.Status(); now < lastPhase {
					t.Fatalf("phase went backwards from %s to %s", lastPhase, now)
				} else {
					lastPhase = now
				}
			}
		})
	}
}

func TestConcurrentVotes(t *testing.T) {
	b := newTestBallot(t)

	voters := make([]Principal, 50)
	for i := range voters {
		voters[i] = Principal(fmt.Sprintf("0xv%02d", i))
	}
	toVoting(t, b, voters, "A", "B", "C")

	var ok atomic.Int32
	var wg sync.WaitGroup
	// every voter tries twice
	for round := 0; round < 2; round++ {
		for i, v := range voters {
			wg.Add(1)
			go func(v Principal, id uint64) {
				defer wg.Done()
				if err := b.Vote(v, id); err == nil {
					ok.Add(1)
				}
				_ = b.Snapshot()
			}(v, uint64(i%3))
		}
	}
	wg.Wait()

	if int(ok.Load()) != len(voters) {
		t.Errorf("expected %d successful votes, got %d", len(voters), ok.Load())
	}
	checkInvariants(t, b)
	if s := b.Snapshot(); s.VotesCast != uint64(len(voters)) {
		t.Errorf("expected %d votes cast, got %d", len(voters), s.VotesCast)
	}
}
