package handler

import (
	"redis/internal/processor"
	"redis/internal/protocol"
	"redis/internal/storage"
)

// handleSLAdd implements SLADD key score member [score member ...].
func (h *CommandHandler) handleSLAdd(cmd *protocol.Command) []byte {
	if len(cmd.Args) < 4 || len(cmd.Args)%2 != 0 {
		return protocol.EncodeError("ERR wrong number of arguments for 'sladd' command")
	}

	key := cmd.Args[1]
	pairs := make([][2][]byte, 0, (len(cmd.Args)-2)/2)
	for i := 2; i < len(cmd.Args); i += 2 {
		pairs = append(pairs, [2][]byte{[]byte(cmd.Args[i]), []byte(cmd.Args[i+1])})
	}

	procCmd := &processor.Command{
		Type:     processor.CmdSLAdd,
		Key:      key,
		Args:     []interface{}{pairs},
		Response: make(chan interface{}, 1),
	}
	h.processor.Submit(procCmd)
	result := <-procCmd.Response

	res := result.(processor.IntResult)
	if res.Err != nil {
		return protocol.EncodeError(wrongTypeOrGeneric(res.Err))
	}
	return protocol.EncodeInteger(res.Result)
}

// handleSLRem implements SLREM key score [score ...], removing every
// entry at each given score via delete-all-with-score and returning the
// total count removed.
func (h *CommandHandler) handleSLRem(cmd *protocol.Command) []byte {
	if len(cmd.Args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'slrem' command")
	}

	scores := make([][]byte, 0, len(cmd.Args)-2)
	for i := 2; i < len(cmd.Args); i++ {
		scores = append(scores, []byte(cmd.Args[i]))
	}

	procCmd := &processor.Command{
		Type:     processor.CmdSLRem,
		Key:      cmd.Args[1],
		Args:     []interface{}{scores},
		Response: make(chan interface{}, 1),
	}
	h.processor.Submit(procCmd)
	result := <-procCmd.Response

	res := result.(processor.IntResult)
	if res.Err != nil {
		return protocol.EncodeError(wrongTypeOrGeneric(res.Err))
	}
	return protocol.EncodeInteger(res.Result)
}

// handleSLAll implements SLALL key, returning a flat score,member,...
// multi-bulk reply in ascending order.
func (h *CommandHandler) handleSLAll(cmd *protocol.Command) []byte {
	if len(cmd.Args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'slall' command")
	}
	return h.submitEntries(processor.CmdSLAll, cmd.Args[1], nil)
}

// handleSLRange implements SLRANGE key min max.
func (h *CommandHandler) handleSLRange(cmd *protocol.Command) []byte {
	if len(cmd.Args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'slrange' command")
	}
	return h.submitEntries(processor.CmdSLRange, cmd.Args[1], []interface{}{[]byte(cmd.Args[2]), []byte(cmd.Args[3])})
}

// handleSLSearch implements SLSEARCH key score.
func (h *CommandHandler) handleSLSearch(cmd *protocol.Command) []byte {
	if len(cmd.Args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'slsearch' command")
	}
	return h.submitEntries(processor.CmdSLSearch, cmd.Args[1], []interface{}{[]byte(cmd.Args[2])})
}

// handleSLCard implements SLCARD key.
func (h *CommandHandler) handleSLCard(cmd *protocol.Command) []byte {
	if len(cmd.Args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'slcard' command")
	}

	procCmd := &processor.Command{
		Type:     processor.CmdSLCard,
		Key:      cmd.Args[1],
		Response: make(chan interface{}, 1),
	}
	h.processor.Submit(procCmd)
	result := <-procCmd.Response

	res := result.(processor.IntResult)
	if res.Err != nil {
		return protocol.EncodeError(wrongTypeOrGeneric(res.Err))
	}
	return protocol.EncodeInteger(res.Result)
}

// submitEntries submits a command expecting an EntriesResult and
// flattens it to a score,member,... multi-bulk reply.
func (h *CommandHandler) submitEntries(cmdType processor.CommandType, key string, args []interface{}) []byte {
	procCmd := &processor.Command{
		Type:     cmdType,
		Key:      key,
		Args:     args,
		Response: make(chan interface{}, 1),
	}
	h.processor.Submit(procCmd)
	result := <-procCmd.Response

	res := result.(processor.EntriesResult)
	if res.Err != nil {
		return protocol.EncodeError(wrongTypeOrGeneric(res.Err))
	}

	flat := make([]string, 0, len(res.Entries)*2)
	for _, e := range res.Entries {
		flat = append(flat, e.Score.String(), e.Member.String())
	}
	return protocol.EncodeArray(flat)
}

// wrongTypeOrGeneric renders a storage error as its own message when it
// already carries a RESP error prefix, or wraps it with ERR otherwise.
func wrongTypeOrGeneric(err error) string {
	if err == storage.ErrWrongType {
		return err.Error()
	}
	return "ERR " + err.Error()
}
