package volume

// Bitmap is a first-fit contiguous block allocator. Bit i set means
// block i is in use. It is not safe for concurrent use; callers that
// need concurrency safety must serialize access themselves (the
// request pipeline does this by construction).
type Bitmap struct {
	bits  []bool
	total uint32
}

// NewBitmap returns a bitmap sized for total blocks, all initially free.
func NewBitmap(total uint32) *Bitmap {
	return &Bitmap{bits: make([]bool, total), total: total}
}

// TotalBlocks returns the number of blocks the bitmap tracks.
func (b *Bitmap) TotalBlocks() uint32 {
	return b.total
}

// FreeBlocks returns the count of currently unset bits.
func (b *Bitmap) FreeBlocks() uint32 {
	var n uint32
	for _, used := range b.bits {
		if !used {
			n++
		}
	}
	return n
}

// MarkUsed marks count blocks starting at start as in use, regardless
// of their prior state. Used during bootstrap to reserve the fixed
// header/user-table/root/home blocks.
func (b *Bitmap) MarkUsed(start, count uint32) error {
	if uint64(start)+uint64(count) > uint64(b.total) {
		return ErrBadLayout
	}
	for i := start; i < start+count; i++ {
		b.bits[i] = true
	}
	return nil
}

// MarkFree marks count blocks starting at start as free.
func (b *Bitmap) MarkFree(start, count uint32) error {
	if uint64(start)+uint64(count) > uint64(b.total) {
		return ErrBadLayout
	}
	for i := start; i < start+count; i++ {
		b.bits[i] = false
	}
	return nil
}

// Allocate scans for the first run of count consecutive free blocks
// and marks it used. It returns ok=false if no such run exists.
func (b *Bitmap) Allocate(count uint32) (start uint32, ok bool) {
	if count == 0 || count > b.total {
		return 0, false
	}
	var run uint32
	for i := uint32(0); i < b.total; i++ {
		if b.bits[i] {
			run = 0
			continue
		}
		run++
		if run == count {
			begin := i + 1 - count
			for j := begin; j <= i; j++ {
				b.bits[j] = true
			}
			return begin, true
		}
	}
	return 0, false
}

// Free releases count blocks starting at start back to the pool.
func (b *Bitmap) Free(start, count uint32) error {
	return b.MarkFree(start, count)
}

// IsUsed reports whether a single block is currently allocated.
func (b *Bitmap) IsUsed(block uint32) bool {
	if block >= b.total {
		return false
	}
	return b.bits[block]
}
