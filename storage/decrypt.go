package storage

import (
	"log"

	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// Reads degrade, they do not fail: a record whose envelope cannot be opened
// is returned with its ciphertext intact and the error logged, so one bad
// record never sinks a whole list.

func decryptHealthRecord(enc *crypto.Encryptor, rec models.HealthDataRecord) models.HealthDataRecord {
	if !rec.HealthMetrics.Sealed() {
		return rec
	}
	plain, err := enc.Decrypt(rec.HealthMetrics)
	if err != nil {
		log.Printf("storage: failed to decrypt health metrics for record %d: %v", rec.ID, err)
		return rec
	}
	rec.HealthMetrics = models.PlainField(plain)
	rec.WasDecrypted = true
	return rec
}

func decryptConsultation(enc *crypto.Encryptor, c models.HealthConsultation) models.HealthConsultation {
	opened, failed := 0, 0
	open := func(name string, f models.EncryptedField) models.EncryptedField {
		if !f.Sealed() {
			return f
		}
		plain, err := enc.Decrypt(f)
		if err != nil {
			log.Printf("storage: failed to decrypt consultation %d %s: %v", c.ID, name, err)
			failed++
			return f
		}
		opened++
		return models.PlainField(plain)
	}

	c.Symptoms = open("symptoms", c.Symptoms)
	c.Analysis = open("analysis", c.Analysis)
	c.Recommendations = open("recommendations", c.Recommendations)
	// marks only records on which a decrypt actually happened, same as the
	// health-record path
	c.WasDecrypted = opened > 0 && failed == 0
	return c
}
