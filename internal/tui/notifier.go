package tui

import "github.com/equilibra/eqboard/internal/domain"

// noticeBuffer bounds queued notices; older ones are dropped when full.
const noticeBuffer = 16

// channelNotifier forwards notices into the bubbletea event loop.
type channelNotifier struct {
	ch chan MsgNotice
}

func newChannelNotifier() *channelNotifier {
	return &channelNotifier{ch: make(chan MsgNotice, noticeBuffer)}
}

// Notify implements domain.Notifier without blocking the caller.
func (n *channelNotifier) Notify(level domain.NoticeLevel, message string) {
	select {
	case n.ch <- MsgNotice{Level: level, Message: message}:
	default:
	}
}
