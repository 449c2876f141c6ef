package state

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/songbrowser/internal/db"
	"github.com/llehouerou/songbrowser/internal/songsort"
)

func getFavorites(db dbutil.Executor) (songsort.FavoriteSet, error) {
	rows, err := db.Query(`SELECT level_id FROM favorites`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := songsort.NewFavorites()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		favorites[id] = struct{}{}
	}
	return favorites, rows.Err()
}

// saveFavorites makes the favorites table match favorites. Levels that stay
// favorite keep their original added_at.
func saveFavorites(db *sql.DB, favorites songsort.FavoriteSet, now time.Time) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		existing, err := getFavorites(tx)
		if err != nil {
			return err
		}

		for id := range existing {
			if favorites.Has(id) {
				continue
			}
			if _, err := tx.Exec(`DELETE FROM favorites WHERE level_id = ?`, id); err != nil {
				return err
			}
		}

		for id := range favorites {
			if existing.Has(id) {
				continue
			}
			if _, err := tx.Exec(`INSERT INTO favorites (level_id, added_at) VALUES (?, ?)`, id, now.Unix()); err != nil {
				return err
			}
		}
		return nil
	})
}
