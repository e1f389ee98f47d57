package processor

// executeSortedListCommand routes sorted list commands to their executors.
func (p *Processor) executeSortedListCommand(cmd *Command) {
	switch cmd.Type {
	case CmdSLAdd:
		p.executeSLAdd(cmd)
	case CmdSLRem:
		p.executeSLRem(cmd)
	case CmdSLAll:
		p.executeSLAll(cmd)
	case CmdSLRange:
		p.executeSLRange(cmd)
	case CmdSLSearch:
		p.executeSLSearch(cmd)
	case CmdSLCard:
		p.executeSLCard(cmd)
	}
}

// executeSLAdd inserts/replaces one or more (score, member) pairs.
// cmd.Args[0] is [][2][]byte of score/member byte pairs.
func (p *Processor) executeSLAdd(cmd *Command) {
	pairs := cmd.Args[0].([][2][]byte)
	count, err := p.store.SLAdd(cmd.Key, pairs)
	cmd.Response <- IntResult{Result: count, Err: err}
}

// executeSLRem removes every entry at one or more scores.
// cmd.Args[0] is [][]byte of score bytes.
func (p *Processor) executeSLRem(cmd *Command) {
	scores := cmd.Args[0].([][]byte)
	removed, err := p.store.SLRem(cmd.Key, scores)
	cmd.Response <- IntResult{Result: removed, Err: err}
}

// executeSLAll returns every entry in the collection, in order.
func (p *Processor) executeSLAll(cmd *Command) {
	entries, err := p.store.SLAll(cmd.Key)
	cmd.Response <- EntriesResult{Entries: entries, Err: err}
}

// executeSLRange returns every entry within the parsed range.
// cmd.Args[0]/[1] are the raw min/max bound bytes.
func (p *Processor) executeSLRange(cmd *Command) {
	min := cmd.Args[0].([]byte)
	max := cmd.Args[1].([]byte)
	entries, err := p.store.SLRange(cmd.Key, min, max)
	cmd.Response <- EntriesResult{Entries: entries, Err: err}
}

// executeSLSearch returns every entry whose score equals cmd.Args[0].
func (p *Processor) executeSLSearch(cmd *Command) {
	score := cmd.Args[0].([]byte)
	entries, err := p.store.SLSearch(cmd.Key, score)
	cmd.Response <- EntriesResult{Entries: entries, Err: err}
}

// executeSLCard returns the number of entries in the collection.
func (p *Processor) executeSLCard(cmd *Command) {
	count, err := p.store.SLCard(cmd.Key)
	cmd.Response <- IntResult{Result: count, Err: err}
}
