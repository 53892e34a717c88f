// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
)

// identityNode terminates every tree: the stored form is the value itself,
// modulo the context's final leaf transform. Zero minimum cost keeps it
// affordable under any budget, which is what guarantees termination.
type identityNode struct {
	ctx context
}

func (*identityNode) words() int       { return 1 }
func (*identityNode) scheme() schemeID { return schemeIdentity }

func (n *identityNode) encode(x uint64, out []uint64) {
	out[0] = n.ctx.finalEncode(x)
}

func (n *identityNode) decode(in []uint64) uint64 {
	return n.ctx.finalDecode(in[0])
}

func (n *identityNode) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%sidentity ctx=%s\n", indent(depth), n.ctx.describe())
}
