package match

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Signature is a stable identity for a match roster. Two rosters with the
// same players (by profile ID, or name where no ID is known) and the same
// match type compare equal regardless of line order, so a match echoed by
// the log is not reported twice.
type Signature uint64

// ComputeSignature derives the signature of a roster block.
func ComputeSignature(t Type, entries []RosterEntry) Signature {
	keys := make([]string, len(entries))
	for i, e := range entries {
		if e.ProfileID > 0 {
			keys[i] = fmt.Sprintf("#%d", e.ProfileID)
		} else {
			keys[i] = e.Name
		}
	}
	sort.Strings(keys)

	h := fnv.New64a()
	fmt.Fprintf(h, "%d", int(t))
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
	}
	return Signature(h.Sum64())
}

func (s Signature) String() string {
	return fmt.Sprintf("%016x", uint64(s))
}
