package engine

// vmResult carries the counters produced by one VM execution.
type vmResult struct {
	complexity     int
	copies         int
	neighborWrites int
}

// vm executes one program over a shared 2T scratch tape and jump table,
// reused across interactions by the owning Engine (see engine.go). Besides
// its limit and mask, the only state it keeps between calls is the jump
// table; the scratch tape belongs to the Engine and is passed to each call.
// Both buffers are sized once per configuration.
type vm struct {
	jumps []int32 // len == 2*tapeSize, -1 means unmatched
	limit int     // instruction_limit L
	mask  uint32  // 2*tapeSize - 1
}

func newVM(tapeSize, limit int) *vm {
	twoT := 2 * tapeSize
	return &vm{
		jumps: make([]int32, twoT),
		limit: limit,
		mask:  uint32(twoT - 1),
	}
}

// buildJumps fills v.jumps for the current tape contents. jumps[i] holds the
// position of the *matching* bracket itself (not an offset), found by a
// depth-counting scan that wraps modulo 2T and gives up after 2T steps
// without returning to zero depth, leaving -1 (unmatched). Forward scans
// serve '[' entries, backward scans serve ']' entries. Allowing the scan to
// wrap past the end of the tape lets a '[' match a ']' that lies before it
// in linear order — this is the retrieved source's behavior and is
// preserved, not "fixed".
func (v *vm) buildJumps(tape []byte) {
	twoT := len(v.jumps)
	for i := range v.jumps {
		v.jumps[i] = -1
	}
	for i := 0; i < twoT; i++ {
		switch tape[i] {
		case opLoopOpen:
			depth := 0
			ip := i
			for steps := 0; steps < twoT; steps++ {
				switch tape[ip] {
				case opLoopOpen:
					depth++
				case opLoopClose:
					depth--
					if depth == 0 {
						v.jumps[i] = int32(ip)
					}
				}
				if v.jumps[i] != -1 {
					break
				}
				ip = (ip + 1) % twoT
			}
		case opLoopClose:
			depth := 0
			ip := i
			for steps := 0; steps < twoT; steps++ {
				switch tape[ip] {
				case opLoopClose:
					depth++
				case opLoopOpen:
					depth--
					if depth == 0 {
						v.jumps[i] = int32(ip)
					}
				}
				if v.jumps[i] != -1 {
					break
				}
				ip = (ip - 1 + twoT) % twoT
			}
		}
	}
}

// execute runs the interpreter over tape (length 2T, mutated in place) and
// returns the accumulated counters.
//
// Post-jump semantics: a taken '[' jump lands ip on the matching ']'
// itself; a taken ']' jump lands ip on the matching '[' itself. Because the
// unconditional ip++ below always runs afterward, execution actually
// resumes one past the landing bracket — immediately after the matching
// ']' in the first case, and at the first instruction of the loop body in
// the second.
func (v *vm) execute(tape []byte) vmResult {
	return v.executeFrom(tape, 0, 0, 0)
}

// executeFrom is execute with an explicit initial register state. Every
// real interaction enters through execute (registers always start at
// zero); executeFrom exists so tests can exercise the interpreter with a
// given head-0 precondition without hand-building a program to walk it
// there first.
func (v *vm) executeFrom(tape []byte, ip0, h0_0, h1_0 uint32) vmResult {
	v.buildJumps(tape)

	var res vmResult
	ip, h0, h1 := ip0, h0_0, h1_0
	mask := v.mask
	half := uint32(len(tape) / 2)

	for cycles := 0; cycles < v.limit; cycles++ {
		cur := ip & mask
		op := tape[cur]

		switch op {
		case opMoveReadLeft:
			h0 = (h0 - 1) & mask
		case opMoveReadRight:
			h0 = (h0 + 1) & mask
		case opMoveWriteLeft:
			h1 = (h1 - 1) & mask
		case opMoveWriteRight:
			h1 = (h1 + 1) & mask
		case opDec:
			tape[h0] = byte((int(tape[h0]) - 1) & 255)
		case opInc:
			tape[h0] = byte((int(tape[h0]) + 1) & 255)
		case opCopyOut:
			tape[h1] = tape[h0]
			res.copies++
			if h1 >= half {
				res.neighborWrites++
			}
		case opCopyIn:
			tape[h0] = tape[h1]
			res.copies++
		case opLoopOpen:
			if tape[h0] == 0 {
				target := v.jumps[cur]
				if target == -1 {
					return res
				}
				ip = uint32(target)
			}
		case opLoopClose:
			if tape[h0] != 0 {
				target := v.jumps[cur]
				if target == -1 {
					return res
				}
				ip = uint32(target)
			}
		}

		if isOpcode(op) {
			res.complexity++
		}
		ip++
	}
	return res
}
