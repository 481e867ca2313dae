package results

import (
	"encoding/json"

	"github.com/etcd-io/bbolt"
)

// BoltStore keeps results in a single bbolt database file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(db *bbolt.DB) Store {
	return &BoltStore{db: db}
}

var resultsBucketName = []byte("results")

func (bs *BoltStore) resultsBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	if !tx.Writable() {
		bkt := tx.Bucket(resultsBucketName)

		if bkt == nil {
			return nil, bbolt.ErrBucketNotFound
		}

		return bkt, nil
	}

	return tx.CreateBucketIfNotExists(resultsBucketName)
}

func (bs *BoltStore) encode(data interface{}) ([]byte, error) {
	return json.Marshal(data)
}

func (bs *BoltStore) decode(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

func (bs *BoltStore) UpsertResults(results *SessionResults) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bs.resultsBucket(tx)

		if err != nil {
			return err
		}

		encoded, err := bs.encode(results)

		if err != nil {
			return err
		}

		return bkt.Put([]byte(results.SessionID.String()), encoded)
	})
}

func (bs *BoltStore) FindResultsByID(id string) (*SessionResults, error) {
	var results *SessionResults

	err := bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bs.resultsBucket(tx)

		if err == bbolt.ErrBucketNotFound {
			return ErrResultsNotFound
		} else if err != nil {
			return err
		}

		data := bkt.Get([]byte(id))

		if data == nil {
			return ErrResultsNotFound
		}

		return bs.decode(data, &results)
	})

	return results, err
}

// ListResults returns the stored results ordered by session ID.
func (bs *BoltStore) ListResults() ([]*SessionResults, error) {
	var list []*SessionResults

	err := bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bs.resultsBucket(tx)

		if err == bbolt.ErrBucketNotFound {
			return nil
		} else if err != nil {
			return err
		}

		return bkt.ForEach(func(k, v []byte) error {
			var results *SessionResults

			if err := bs.decode(v, &results); err != nil {
				return err
			}

			list = append(list, results)

			return nil
		})
	})

	return list, err
}

func (bs *BoltStore) DeleteResults(id string) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bs.resultsBucket(tx)

		if err != nil {
			return err
		}

		return bkt.Delete([]byte(id))
	})
}

func (bs *BoltStore) Close() error {
	return bs.db.Close()
}
