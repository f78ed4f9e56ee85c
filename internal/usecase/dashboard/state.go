package dashboard

import (
	"context"
	"time"

	"macroDash/internal/domain"
)

type datasetState struct {
	state     domain.LoadState
	stale     bool
	message   string
	changedAt time.Time
	// inflight — число незавершённых загрузок; состояние остаётся Loading, пока оно больше нуля.
	inflight int
}

// load получает набор через кэш и проводит его по состояниям Idle/Ready/Error -> Loading -> Ready/Error.
func (u *UseCase) load(ctx context.Context, name domain.DatasetName) (*domain.Snapshot, error) {
	u.begin(name)
	snap, err := u.cache.GetOrFetch(ctx, name, u.ttl(name))
	u.finish(name, snap, err)
	return snap, err
}

func (u *UseCase) begin(name domain.DatasetName) {
	u.mu.Lock()
	st := u.states[name]
	st.inflight++
	changed := u.transition(name, st, domain.StateLoading)
	u.mu.Unlock()
	if changed {
		u.notify(name, domain.StateLoading)
	}
}

func (u *UseCase) finish(name domain.DatasetName, snap *domain.Snapshot, err error) {
	to := domain.StateReady
	if err != nil {
		to = domain.StateError
	}

	u.mu.Lock()
	st := u.states[name]
	st.inflight--
	if err != nil {
		st.stale = false
		st.message = (&domain.UnavailableError{Dataset: name, Err: err}).Message()
	} else {
		st.stale = snap.Stale
		st.message = ""
		if snap.Stale {
			st.message = staleMessage(name, snap)
		}
	}
	changed := false
	if st.inflight == 0 {
		changed = u.transition(name, st, to)
	}
	u.mu.Unlock()

	if changed {
		u.notify(name, to)
	}
}

// transition меняет состояние, если переход допустим. Вызывается под u.mu.
func (u *UseCase) transition(name domain.DatasetName, st *datasetState, to domain.LoadState) bool {
	if !st.state.CanTransition(to) {
		return false
	}
	u.log.Debug("dataset state", "dataset", name, "from", st.state, "to", to)
	st.state = to
	st.changedAt = u.clock.Now()
	return true
}

func (u *UseCase) notify(name domain.DatasetName, state domain.LoadState) {
	if u.observer != nil {
		u.observer.DatasetStateChanged(name, state)
	}
}

func (u *UseCase) status(name domain.DatasetName, entry domain.EntryStatus) domain.DatasetStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	st := u.states[name]
	return domain.DatasetStatus{
		EntryStatus: entry,
		State:       st.state,
		Stale:       st.stale,
		Message:     st.message,
		ChangedAt:   st.changedAt,
	}
}
