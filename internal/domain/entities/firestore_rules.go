package entities

import (
	"fmt"
	"time"
)

const (
	FirestoreRulesPath   = "firestore.rules"
	FirestoreIndexesPath = "firestore.indexes.json"
	FirebaseJSONPath     = "firebase.json"

	// DefaultDatabaseID is the identifier of the default Firestore database.
	DefaultDatabaseID = "(default)"
)

// FirestoreRules returns an open-access rules document that stops granting
// access one year after now.
func FirestoreRules(now time.Time) []byte {
	expiry := now.UTC().AddDate(1, 0, 0)
	return []byte(fmt.Sprintf(`rules_version = '2';

service cloud.firestore {
  match /databases/{database}/documents {
    match /{document=**} {
      allow read, write: if request.time < timestamp.date(%d, %d, %d);
    }
  }
}
`, expiry.Year(), int(expiry.Month()), expiry.Day()))
}

// FirebaseJSON returns the minimal firebase.json needed to deploy Firestore rules.
func FirebaseJSON() []byte {
	return []byte(`{
  "firestore": {
    "rules": "firestore.rules",
    "indexes": "firestore.indexes.json"
  }
}
`)
}

// FirestoreIndexes returns an empty indexes document.
func FirestoreIndexes() []byte {
	return []byte(`{
  "indexes": [],
  "fieldOverrides": []
}
`)
}
