// Command seed recreates the directory tables and fills them with sample
// venues, artists and shows.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/directory/db"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

func main() {
	keep := flag.Bool("keep", false, "keep existing tables instead of dropping them")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.NewLogger(cfg.Log.Dir)
	defer log.Close()

	ctx := context.Background()
	bunDB, err := open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	if !*keep {
		log.Info("SEED", "Dropping tables...")
		if err := database.DropSchema(ctx, bunDB); err != nil {
			log.Fatal("SEED", err.Error())
		}
	}

	log.Info("SEED", "Creating tables...")
	if err := database.CreateSchema(ctx, bunDB); err != nil {
		log.Fatal("SEED", err.Error())
	}

	log.Info("SEED", "Seeding sample data...")
	if err := seedData(ctx, db.New(bunDB), time.Now().UTC()); err != nil {
		log.Fatal("SEED", err.Error())
	}

	log.Info("SEED", "✅ Done.")
}

func open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	if cfg.Driver == "postgres" {
		log.Info("DATABASE", "Connecting to PostgreSQL through pgdriver")
		return database.OpenPG(ctx, cfg.URL)
	}
	return database.Open(ctx, cfg, log)
}

func seedData(ctx context.Context, store *db.DB, now time.Time) error {
	venues := []*models.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Folk", "Classical"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123 123 1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		},
		{
			Name:      "The Dueling Pianos Bar",
			Genres:    []string{"Classical", "R&B", "Hip-Hop"},
			Address:   "335 Delancey Street",
			City:      "New York",
			State:     "NY",
			Phone:     "914 003 1132",
			Website:   "https://www.theduelingpianos.com",
			ImageLink: "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=750",
		},
		{
			Name:      "Park Square Live Music & Coffee",
			Genres:    []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:   "34 Whiskey Moore Ave",
			City:      "San Francisco",
			State:     "CA",
			Phone:     "415 000 1234",
			Website:   "https://www.parksquarelivemusicandcoffee.com",
			ImageLink: "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=747",
		},
	}
	artists := []*models.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326 123 5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{
			Name:      "Matt Quevedo",
			Genres:    []string{"Jazz"},
			City:      "New York",
			State:     "NY",
			Phone:     "300 400 5000",
			ImageLink: "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334",
		},
		{
			Name:      "The Wild Sax Band",
			Genres:    []string{"Jazz", "Classical"},
			City:      "San Francisco",
			State:     "CA",
			Phone:     "432 325 5432",
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794",
		},
	}

	return store.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		for _, v := range venues {
			if err := tx.CreateVenue(ctx, v); err != nil {
				return fmt.Errorf("seed venue %q: %w", v.Name, err)
			}
		}
		for _, a := range artists {
			if err := tx.CreateArtist(ctx, a); err != nil {
				return fmt.Errorf("seed artist %q: %w", a.Name, err)
			}
		}

		shows := []models.Show{
			{VenueID: venues[0].ID, ArtistID: artists[0].ID, StartTime: now.AddDate(0, 0, -30)},
			{VenueID: venues[2].ID, ArtistID: artists[1].ID, StartTime: now.AddDate(0, 0, -7)},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.AddDate(0, 0, 14)},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.AddDate(0, 0, 21)},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.AddDate(0, 0, 28)},
		}
		for i := range shows {
			if err := tx.CreateShow(ctx, &shows[i]); err != nil {
				return fmt.Errorf("seed show: %w", err)
			}
		}
		return nil
	})
}
