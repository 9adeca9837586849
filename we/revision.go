package we

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Revision identifies a state of an entity. Revisions are ULIDs, so they sort in the
// order they were generated and carry the millisecond they were created at.
type Revision string

const InitialRevision = Revision("00000000000000000000000000")

func (revision Revision) String() string {
	return string(revision)
}

func (revision Revision) Time() time.Time {
	v, err := ulid.Parse(string(revision))
	if err != nil {
		return time.Unix(0, 0).UTC()
	}

	return ulid.Time(v.Time()).UTC()
}

func (revision Revision) Timestamp() Timestamp {
	return TimestampFromTime(revision.Time())
}

type RevisionGenerator struct {
	lk      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewRevisionGenerator() *RevisionGenerator {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)

	return &RevisionGenerator{
		entropy: entropy,
	}
}

// NewRevision returns a revision strictly greater than every revision previously
// returned by the generator for the same millisecond.
func (g *RevisionGenerator) NewRevision(t time.Time) Revision {
	g.lk.Lock()
	defer g.lk.Unlock()

	return Revision(ulid.MustNew(ulid.Timestamp(t), g.entropy).String())
}
