/*
Package tile re-encodes background tiles into the 8 by 8 pixel blocks used by
the hardware's character memory.

Each logical map tile is split into blocks in row-major block order, so a 16
by 16 tile becomes four blocks: top-left, top-right, bottom-left,
bottom-right. Block 0 is reserved and left blank so that an empty map cell
can point at it; real tiles start at block 1 and occupy contiguous block
indices in the order they are added. Blocks are stored as one palette index
per pixel (256 colour mode).
*/
package tile

const (
	blockWidth  = 8
	blockHeight = blockWidth
	blockPixels = blockWidth * blockHeight
)
