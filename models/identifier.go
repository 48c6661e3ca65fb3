package models

import (
	"fmt"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

// HerbIDPrefix prefix of every herb record ID
const HerbIDPrefix = "herb_"

var herbIDPattern = regexp.MustCompile(`^herb_[0-9a-f]+$`)

/*
HerbID derive the herb record ID from its name and farmer.

The same pair always maps to the same ID, which is what makes record creation idempotent.
Each field is followed by a 0xff terminator so that shifting characters between the two
fields changes the ID.

	@param name string - herb name
	@param farmer string - farmer name
	@return the record ID
*/
func HerbID(name, farmer string) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(name)
	_, _ = digest.Write([]byte{0xff})
	_, _ = digest.WriteString(farmer)
	_, _ = digest.Write([]byte{0xff})
	return fmt.Sprintf("%s%016x", HerbIDPrefix, digest.Sum64())
}

// IsHerbID whether the string is shaped like a herb record ID
func IsHerbID(id string) bool {
	return herbIDPattern.MatchString(id)
}
