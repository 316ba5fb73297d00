package playback

import (
	"errors"
	"testing"
	"testing/synctest"

	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/session"
	"github.com/shershen08/playsync/internal/wire"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Current: session.State{SelectedItemID: "a", Playing: true}, Cause: CauseSelect})
		sub.sendStatus(StatusChange{Status: channel.Connected})
		sub.sendSync(SyncEvent{Message: wire.SyncMessage{TrackID: "a"}, Reason: reasonSelect})
		sub.sendReply(ReplyEvent{Reply: wire.Reply{Status: wire.StatusSuccess}})
		sub.sendError(ErrorEvent{Operation: errmsg.OpSyncPush, Err: errors.New("boom")})

		e := <-sub.StateChanged
		if e.Cause != CauseSelect || !e.Current.Playing {
			t.Errorf("StateChanged = %+v, want playing select", e)
		}

		st := <-sub.StatusChanged
		if st.Status != channel.Connected {
			t.Errorf("StatusChanged.Status = %v, want connected", st.Status)
		}

		s := <-sub.Synced
		if s.Message.TrackID != "a" || s.Reason != reasonSelect {
			t.Errorf("Synced = %+v, want track a select", s)
		}

		r := <-sub.Replies
		if !r.Reply.OK() {
			t.Errorf("Replies = %+v, want success", r)
		}

		er := <-sub.Error
		if er.Operation != errmsg.OpSyncPush {
			t.Errorf("Error.Operation = %q, want %q", er.Operation, errmsg.OpSyncPush)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	// Fill buffer
	for range eventBufferSize + 5 {
		sub.sendState(StateChange{})
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
