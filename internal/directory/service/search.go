package service

import (
	"context"
	"fmt"
	"strings"

	"fyyur/internal/directory/db"
)

// Search finds venues or artists whose name, city or state contains term,
// ignoring case. An empty term matches everything. Upcoming shows are counted
// through the matched entity's own column on shows.
func (s *Service) Search(ctx context.Context, kind Kind, term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)

	var (
		hits []Summary
		side db.ShowSide
	)
	switch kind {
	case KindVenue:
		venues, err := s.DB.SearchVenues(ctx, term)
		if err != nil {
			return nil, s.storageErr("search venues", err)
		}
		for _, v := range venues {
			hits = append(hits, Summary{ID: v.ID, Name: v.Name})
		}
		side = db.ByVenue
	case KindArtist:
		artists, err := s.DB.SearchArtists(ctx, term)
		if err != nil {
			return nil, s.storageErr("search artists", err)
		}
		for _, a := range artists {
			hits = append(hits, Summary{ID: a.ID, Name: a.Name})
		}
		side = db.ByArtist
	default:
		return nil, fmt.Errorf("search: unknown kind %q", kind)
	}

	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	counts, err := s.DB.UpcomingShowCounts(ctx, side, ids, s.now())
	if err != nil {
		return nil, s.storageErr("count upcoming shows", err)
	}

	data := make([]Summary, 0, len(hits))
	for _, h := range hits {
		h.NumUpcomingShows = counts[h.ID]
		data = append(data, h)
	}
	return &SearchResult{Count: len(data), Data: data}, nil
}
