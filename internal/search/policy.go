package search

// Policy groups every tunable of the ranking algorithm so boundary
// behavior can be probed in tests without literals scattered through the
// matcher and ranker.
type Policy struct {
	// Field-match strategy scores (roughly 0..1000).
	ExactScore       int // whole field equals the query
	TokenScore       int // query equals one whole token
	TokenPrefixScore int // a token starts with the query
	FieldPrefixScore int // the whole field starts with the query

	// Substring match: base + positional boost + capped length bonus.
	SubstringBase     int
	PositionBoostMax  int // boost = max(0, PositionBoostMax - matchIndex)
	LengthBonusRef    int // bonus = max(0, LengthBonusRef - len(field))
	LengthBonusCap    int
	OverlapBase       int // token overlap: base + capped proportional part
	OverlapScale      int
	OverlapCap        int
	EditBase          int // edit similarity: base + similarity * EditScale
	EditScale         int
	EditMaxDistance   float64 // normalized distance above this is rejected
	SubsequenceScore  int

	// Field weights for the record-level sum.
	NameWeight      float64
	CategoryWeight  float64
	ShortDescWeight float64
	DescWeight      float64

	// Record-level thresholds.
	MinQueryLen       int     // queries shorter than this return nothing
	ShortQueryLen     int     // queries shorter than this are treated as short
	ShortQueryFloor   int     // minimum score floor forced for short queries
	ShortQueryDampen  float64 // multiplier for short queries without a strong prefix
	DefaultMinScore   int
	DefaultMaxResults int
}

// DefaultPolicy returns the production ranking policy.
func DefaultPolicy() Policy {
	return Policy{
		ExactScore:       1000,
		TokenScore:       700,
		TokenPrefixScore: 600,
		FieldPrefixScore: 550,

		SubstringBase:    300,
		PositionBoostMax: 200,
		LengthBonusRef:   100,
		LengthBonusCap:   50,
		OverlapBase:      200,
		OverlapScale:     100,
		OverlapCap:       200,
		EditBase:         150,
		EditScale:        250,
		EditMaxDistance:  0.5,
		SubsequenceScore: 50,

		NameWeight:      1.0,
		CategoryWeight:  0.7,
		ShortDescWeight: 0.5,
		DescWeight:      0.3,

		MinQueryLen:       2,
		ShortQueryLen:     3,
		ShortQueryFloor:   400,
		ShortQueryDampen:  0.25,
		DefaultMinScore:   120,
		DefaultMaxResults: 20,
	}
}
