package aggregate

import "github.com/vncsmyrnk/boulder/internal/core/domain"

// Bucket holds the voters that selected one candidate.
type Bucket struct {
	Key    string
	Voters []string
}

// Count is the number of votes in the bucket.
func (b Bucket) Count() int {
	return len(b.Voters)
}

// Tally is the per-candidate breakdown of a period's votes.
type Tally struct {
	Days      []Bucket
	Locations []Bucket
}

// TallyVotes counts votes per day and per location. Every candidate gets a
// bucket even without votes, in declared order; selections outside the
// candidate lists get a bucket appended in first-seen order.
func TallyVotes(votes []domain.Vote, days, locations []string) Tally {
	dayBuckets := newBucketSet(days)
	locationBuckets := newBucketSet(locations)

	for _, v := range votes {
		v = v.Normalize()
		for _, day := range v.Weekdays {
			dayBuckets.add(day, v.Member)
		}
		for _, loc := range v.Locations {
			locationBuckets.add(loc, v.Member)
		}
	}

	return Tally{
		Days:      dayBuckets.buckets,
		Locations: locationBuckets.buckets,
	}
}

// LeadingDays returns the days tied at the highest nonzero count.
func (t Tally) LeadingDays() []Bucket {
	return Leading(t.Days)
}

// LeadingLocations returns the locations tied at the highest nonzero count.
func (t Tally) LeadingLocations() []Bucket {
	return Leading(t.Locations)
}

// Day returns the bucket for day, or an empty bucket when unknown.
func (t Tally) Day(day string) Bucket {
	return find(t.Days, day)
}

// Location returns the bucket for loc, or an empty bucket when unknown.
func (t Tally) Location(loc string) Bucket {
	return find(t.Locations, loc)
}

// Leading returns every bucket whose count equals the maximum, keeping input
// order. Ties are never broken, and nothing leads when nobody voted.
func Leading(buckets []Bucket) []Bucket {
	top := 0
	for _, b := range buckets {
		if b.Count() > top {
			top = b.Count()
		}
	}

	leading := []Bucket{}
	if top == 0 {
		return leading
	}
	for _, b := range buckets {
		if b.Count() == top {
			leading = append(leading, b)
		}
	}
	return leading
}

// Keys lists the bucket keys in order.
func Keys(buckets []Bucket) []string {
	keys := make([]string, 0, len(buckets))
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	return keys
}

func find(buckets []Bucket, key string) Bucket {
	for _, b := range buckets {
		if b.Key == key {
			return b
		}
	}
	return Bucket{Key: key, Voters: []string{}}
}

type bucketSet struct {
	buckets []Bucket
	index   map[string]int
}

func newBucketSet(candidates []string) *bucketSet {
	s := &bucketSet{buckets: []Bucket{}, index: make(map[string]int, len(candidates))}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		s.bucket(c)
	}
	return s
}

func (s *bucketSet) bucket(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	s.buckets = append(s.buckets, Bucket{Key: key, Voters: []string{}})
	s.index[key] = len(s.buckets) - 1
	return len(s.buckets) - 1
}

func (s *bucketSet) add(key, voter string) {
	i := s.bucket(key)
	s.buckets[i].Voters = append(s.buckets[i].Voters, voter)
}
