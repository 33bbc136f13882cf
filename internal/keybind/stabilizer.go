package keybind

// Execution-order stabilization. Some command chains must be reachable in
// both directions from a single key (tray cycling being the usual case);
// the file format expresses this as a literal palindrome: the chain is
// followed by its own reverse minus the shared last element.

// Mirror builds the stabilized command string for commands. Chains of
// zero or one command are returned joined but unchanged; for N >= 2 the
// result is commands + reverse(commands)[1:], a palindrome of length
// 2N-1. Example: [A B C] -> "A $$ B $$ C $$ B $$ A".
func Mirror(commands []string) string {
	if len(commands) <= 1 {
		return JoinCommandChain(commands)
	}
	mirrored := make([]string, 0, 2*len(commands)-1)
	mirrored = append(mirrored, commands...)
	for i := len(commands) - 2; i >= 0; i-- {
		mirrored = append(mirrored, commands[i])
	}
	return JoinCommandChain(mirrored)
}

// DetectAndUnmirror inspects a command chain and, when it has the exact
// shape Mirror produces, recovers the original first half. A valid mirror
// always has odd length >= 3; anything else is returned unchanged with
// mirrored == false.
//
// Known format limitation: a user-authored chain that happens to be a
// palindrome is indistinguishable from a stabilized one and will be
// halved on import. The format carries no disambiguation marker, so the
// detection is intentionally shape-based.
func DetectAndUnmirror(chainText string) (commands []string, mirrored bool) {
	tokens := SplitCommandChain(chainText)
	if len(tokens) <= 1 {
		return tokens, false
	}
	if len(tokens) < 3 || len(tokens)%2 == 0 {
		return tokens, false
	}
	mid := len(tokens) / 2
	firstHalf := tokens[:mid+1]
	secondHalf := tokens[mid+1:]
	for i := range secondHalf {
		// secondHalf must be the reverse of firstHalf minus its middle
		// element.
		if secondHalf[i] != firstHalf[mid-1-i] {
			return tokens, false
		}
	}
	return firstHalf, true
}
