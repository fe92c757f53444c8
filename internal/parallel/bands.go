package parallel

// MinBandRows is the smallest band handed to a worker. Smaller bands cost
// more in scheduling than they save.
const MinBandRows = 16

// Rows calls fn over [0, height) split into contiguous row bands [y0, y1).
// With a nil pool, or when the image is too small to split, fn runs once on
// the caller's goroutine with the whole range.
func Rows(p *WorkerPool, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if p == nil || p.Workers() < 2 || height < 2*MinBandRows {
		fn(0, height)
		return
	}

	// Twice as many bands as workers gives idle workers something to take.
	bands := min(p.Workers()*2, height/MinBandRows)
	p.runBands(height, (height+bands-1)/bands, fn)
}
