package gitstore

import (
	"fmt"

	"github.com/go-git/go-git/v5/config"

	"rad/internal/domain"
)

func peerValue(peer domain.PeerID) string {
	if peer == "" {
		return anyPeer
	}
	return peer.String()
}

func peerFromValue(v string) domain.PeerID {
	if v == anyPeer {
		return ""
	}
	return domain.PeerID(v)
}

func tracked(cfg *config.Config, urn domain.URN) []string {
	if !cfg.Raw.HasSection(trackingSection) {
		return nil
	}
	sec := cfg.Raw.Section(trackingSection)
	if !sec.HasSubsection(urn.String()) {
		return nil
	}
	return sec.Subsection(urn.String()).OptionAll(peerOption)
}

// Track records an edge to urn, scoped to peer unless peer is empty. It
// reports false when the edge already existed.
func (s *Storage) Track(urn domain.URN, peer domain.PeerID) (bool, error) {
	var added bool
	err := s.updateConfig(func(cfg *config.Config) (bool, error) {
		want := peerValue(peer)
		for _, v := range tracked(cfg, urn) {
			if v == want {
				return false, nil
			}
		}
		cfg.Raw.Section(trackingSection).Subsection(urn.String()).AddOption(peerOption, want)
		added = true
		return true, nil
	})
	return added, err
}

// Tracked lists the peers tracked for urn. An empty PeerID denotes an edge not
// scoped to a single peer.
func (s *Storage) Tracked(urn domain.URN) ([]domain.PeerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.repo.Config()
	if err != nil {
		return nil, err
	}
	var out []domain.PeerID
	for _, v := range tracked(cfg, urn) {
		out = append(out, peerFromValue(v))
	}
	return out, nil
}

// Untrack removes the edge urn→peer and leaves every other edge of urn alone.
// With UntrackMustExist an absent edge is domain.ErrTrackingEdgeMissing; with
// UntrackAny it reports false.
func (s *Storage) Untrack(urn domain.URN, peer domain.PeerID, policy domain.UntrackPolicy) (bool, error) {
	var removed bool
	err := s.updateConfig(func(cfg *config.Config) (bool, error) {
		want := peerValue(peer)
		values := tracked(cfg, urn)
		keep := make([]string, 0, len(values))
		for _, v := range values {
			if v == want {
				removed = true
				continue
			}
			keep = append(keep, v)
		}
		if !removed {
			if policy == domain.UntrackMustExist {
				return false, fmt.Errorf("%w: %s for %s", domain.ErrTrackingEdgeMissing, want, urn)
			}
			return false, nil
		}

		sec := cfg.Raw.Section(trackingSection)
		if len(keep) == 0 {
			sec.RemoveSubsection(urn.String())
			return true, nil
		}
		sub := sec.Subsection(urn.String())
		sub.RemoveOption(peerOption)
		for _, v := range keep {
			sub.AddOption(peerOption, v)
		}
		return true, nil
	})
	return removed, err
}

// UntrackAll removes every edge of urn and returns the peers that were
// removed. With UntrackAny, a urn without edges is a successful no-op.
func (s *Storage) UntrackAll(urn domain.URN, policy domain.UntrackPolicy) ([]domain.PeerID, error) {
	var removed []domain.PeerID
	err := s.updateConfig(func(cfg *config.Config) (bool, error) {
		values := tracked(cfg, urn)
		if len(values) == 0 {
			if policy == domain.UntrackMustExist {
				return false, fmt.Errorf("%w: %s", domain.ErrTrackingEdgeMissing, urn)
			}
			return false, nil
		}
		for _, v := range values {
			removed = append(removed, peerFromValue(v))
		}
		cfg.Raw.Section(trackingSection).RemoveSubsection(urn.String())
		return true, nil
	})
	return removed, err
}
