package weather

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	Save(set SampleSet)
	Get(id string) (SampleSet, error)
	LatestFor(start Date) (SampleSet, error)
	List() []SampleSet
}
