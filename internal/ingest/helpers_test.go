package ingest

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }
