package models

// RentInsight summarises the rent records that matched a request.
type RentInsight struct {
	MatchedRecords    int
	CandidateBoroughs int
	MeanMedianRent    float64
	MedianMedianRent  float64
	LowestQuartile    float64
	HighestQuartile   float64
	CheapestBorough   string
	PriciestBorough   string
	RecordsByCategory map[AccommodationType]int
	MedianByBorough   map[string]float64
}
