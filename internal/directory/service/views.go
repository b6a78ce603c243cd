package service

import (
	"time"

	"fyyur/internal/models"
	"fyyur/internal/timefmt"
)

type Kind string

const (
	KindVenue  Kind = "venue"
	KindArtist Kind = "artist"
)

// Summary is one row of a venue area or a search result.
type Summary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues sharing a city and state.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

// ShowEntry is a show as displayed. Detail pages fill in only the side that
// is not the page's own entity.
type ShowEntry struct {
	VenueID         int64  `json:"venue_id,omitempty"`
	VenueName       string `json:"venue_name,omitempty"`
	VenueImageLink  string `json:"venue_image_link,omitempty"`
	ArtistID        int64  `json:"artist_id,omitempty"`
	ArtistName      string `json:"artist_name,omitempty"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	StartTime       string `json:"start_time"`
	StartTimeRaw    string `json:"start_time_raw"`
}

type VenueDetail struct {
	models.Venue
	PastShows          []ShowEntry `json:"past_shows"`
	UpcomingShows      []ShowEntry `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	models.Artist
	PastShows          []ShowEntry `json:"past_shows"`
	UpcomingShows      []ShowEntry `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// PartitionShows splits shows into those before now and those after it.
// A show starting exactly at now is in neither list. Order is preserved.
func PartitionShows(shows []models.Show, now time.Time) (past, upcoming []models.Show) {
	past, upcoming = []models.Show{}, []models.Show{}
	for _, show := range shows {
		switch {
		case show.StartTime.Before(now):
			past = append(past, show)
		case show.StartTime.After(now):
			upcoming = append(upcoming, show)
		}
	}
	return past, upcoming
}

// GroupByArea builds one Area per distinct city and state, in the order
// the pairs first appear in venues.
func GroupByArea(venues []models.Venue, upcoming map[int64]int) []Area {
	areas := []Area{}
	index := map[[2]string]int{}
	for _, v := range venues {
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []Summary{}})
		}
		areas[i].Venues = append(areas[i].Venues, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return areas
}

func (s *Service) showEntry(show models.Show) ShowEntry {
	entry := ShowEntry{
		StartTime:    s.Formatter.Format(show.StartTime, timefmt.Medium),
		StartTimeRaw: show.StartTime.UTC().Format(time.RFC3339),
	}
	if show.Venue != nil {
		entry.VenueID = show.Venue.ID
		entry.VenueName = show.Venue.Name
		entry.VenueImageLink = show.Venue.ImageLink
	}
	if show.Artist != nil {
		entry.ArtistID = show.Artist.ID
		entry.ArtistName = show.Artist.Name
		entry.ArtistImageLink = show.Artist.ImageLink
	}
	return entry
}

func (s *Service) showEntries(shows []models.Show) []ShowEntry {
	entries := make([]ShowEntry, 0, len(shows))
	for _, show := range shows {
		entries = append(entries, s.showEntry(show))
	}
	return entries
}
