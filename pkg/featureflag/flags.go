package featureflag

var (
	// OmitHistogramEnumMax controls whether the per-shard metric catalog
	// omits the entry for the histogram enumeration sentinel, which never
	// carries observations.
	OmitHistogramEnumMax = New("OmitHistogramEnumMax", Bool(false))

	// UnbiasedIngestHistograms controls whether the ingest time histograms
	// of tables are cumulative bucketed histograms instead of summaries over
	// a sliding time window.
	UnbiasedIngestHistograms = New("UnbiasedIngestHistograms", Bool(false))
)
