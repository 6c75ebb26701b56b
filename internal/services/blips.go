package services

import (
	"errors"
	"math"
	"sort"

	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// nearestLimit caps the nearest-blips result set.
const nearestLimit = 25

// earthRadiusMiles is the spherical Earth radius used for great-circle
// distances, matching the classic 3959-mile constant.
const earthRadiusMiles = 3959

// GreatCircleMiles computes the great-circle distance between two coordinates
// in miles using the spherical law of cosines. The acos argument is clamped to
// [-1, 1]: identical or near-antipodal points can drift just outside the
// domain through floating-point rounding.
func GreatCircleMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	rlat1 := lat1 * degToRad
	rlat2 := lat2 * degToRad
	dlon := (lon2 - lon1) * degToRad

	arg := math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(dlon) + math.Sin(rlat1)*math.Sin(rlat2)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}

	return earthRadiusMiles * math.Acos(arg)
}

// CreateBlip drops a song at a coordinate for a user. The song and user
// references must exist; the checks and the insert share one transaction.
func CreateBlip(db *gorm.DB, songID, userID uint64, latitude, longitude float64) (*models.Blip, error) {
	var blip models.Blip

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Song{}).Where("id = ?", songID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NewDomainError(types.StatusSongDoesNotExist)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NewDomainError(types.StatusUserDoesNotExist)
		}

		blip = models.Blip{
			SongID:    songID,
			UserID:    userID,
			Latitude:  latitude,
			Longitude: longitude,
		}
		if err := tx.Create(&blip).Error; err != nil {
			return err
		}
		return tx.Preload("Song.Providers").First(&blip, blip.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &blip, nil
}

// BlipByID fetches a blip with its song embedded.
func BlipByID(db *gorm.DB, id uint64) (*models.Blip, error) {
	var blip models.Blip
	if err := db.Preload("Song.Providers").First(&blip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewDomainError(types.StatusBlipDoesNotExist)
		}
		return nil, err
	}
	return &blip, nil
}

// AllBlips lists every blip in insertion order.
func AllBlips(db *gorm.DB) ([]models.Blip, error) {
	var blips []models.Blip
	if err := blipScan(db).Order("id ASC").Find(&blips).Error; err != nil {
		return nil, err
	}
	return blips, nil
}

// NearestBlips returns up to 25 blips ordered by ascending great-circle
// distance from the query point, songs embedded. Ties are stable by insertion
// order, lowest id first.
func NearestBlips(db *gorm.DB, latitude, longitude float64) ([]models.Blip, error) {
	var blips []models.Blip
	if err := blipScan(db).Order("id ASC").Find(&blips).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(blips, func(i, j int) bool {
		di := GreatCircleMiles(latitude, longitude, blips[i].Latitude, blips[i].Longitude)
		dj := GreatCircleMiles(latitude, longitude, blips[j].Latitude, blips[j].Longitude)
		return di < dj
	})

	if len(blips) > nearestLimit {
		blips = blips[:nearestLimit]
	}
	return blips, nil
}

// blipScan builds the full-table blip query with songs preloaded. MySQL gets
// an execution-time cap since the nearest query scans every row.
func blipScan(db *gorm.DB) *gorm.DB {
	q := db.Preload("Song.Providers")
	if db.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.New("MAX_EXECUTION_TIME(5000)"))
	}
	return q
}
