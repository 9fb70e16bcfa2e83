package app

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	prefsBucket = "prefs"

	// PrefSoundEffects mirrors the browser-local key the storefront always
	// used for the ambient sound toggle.
	PrefSoundEffects = "beacon_sounds"
)

// Prefs is a small bolt-backed key-value store for device-local preferences
// that never belong in the catalog database.
type Prefs struct {
	db *bolt.DB
}

// OpenPrefs opens (or creates) the preference database at path.
func OpenPrefs(path string) (*Prefs, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(prefsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Prefs{db: db}, nil
}

func (p *Prefs) Close() error {
	return p.db.Close()
}

// GetBool returns the stored flag, or fallback when the key was never set.
func (p *Prefs) GetBool(key string, fallback bool) bool {
	val := fallback
	_ = p.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(prefsBucket)).Get([]byte(key))
		if raw != nil {
			val = string(raw) == "true"
		}
		return nil
	})
	return val
}

// SetBool stores the flag.
func (p *Prefs) SetBool(key string, val bool) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		str := "false"
		if val {
			str = "true"
		}
		return tx.Bucket([]byte(prefsBucket)).Put([]byte(key), []byte(str))
	})
}

// SoundEnabled reports the sound-effects preference, on by default.
func (p *Prefs) SoundEnabled() bool {
	return p.GetBool(PrefSoundEffects, true)
}

// SetSoundEnabled stores the sound-effects preference.
func (p *Prefs) SetSoundEnabled(on bool) error {
	return p.SetBool(PrefSoundEffects, on)
}
