package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tanq16/xdcc/internal/irc"
	"github.com/tanq16/xdcc/internal/output"
	"github.com/tanq16/xdcc/internal/transfer"
	"github.com/tanq16/xdcc/internal/utils"
)

// displayObserver mirrors transfer tasks into output manager rows.
type displayObserver struct {
	mgr  *output.Manager
	peer string
}

func (o displayObserver) TaskStarted(t *transfer.Task) {
	id := o.mgr.Register(t.ID, t.Offer.FileName, func() (uint64, uint64) { return t.Progress() })
	o.mgr.SetStatus(id, "active")
	o.mgr.SetMessage(id, fmt.Sprintf("Downloading %s from %s", t.Offer.FileName, o.peer))
}

func (o displayObserver) TaskFinished(t *transfer.Task, err error) {
	if err != nil {
		o.mgr.ReportError(t.ID, err)
		return
	}
	o.mgr.Complete(t.ID, fmt.Sprintf("Downloaded %s (%s)", t.Offer.FileName, utils.FormatBytes(t.Offer.SizeBytes)))
}

// Run executes every request on its own control connection, at most
// cfg.Workers at a time, and returns the first failure in request order.
func Run(ctx context.Context, requests []utils.DownloadRequest, cfg utils.Config) error {
	log := utils.GetLogger("scheduler")
	outputMgr := output.NewManager()
	outputMgr.StartDisplay()
	defer outputMgr.StopDisplay()

	type indexed struct {
		idx int
		req utils.DownloadRequest
	}
	jobCh := make(chan indexed, len(requests))
	for i, req := range requests {
		jobCh <- indexed{i, req}
	}
	close(jobCh)

	numWorkers := max(1, min(cfg.Workers, len(requests)))
	errs := make([]error, len(requests))
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobCh {
				log.Debug().Int("worker", workerID).Str("bot", job.req.PeerName).Msg("starting session")
				errs[job.idx] = runRequest(ctx, job.req, cfg, outputMgr)
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func runRequest(ctx context.Context, req utils.DownloadRequest, cfg utils.Config, mgr *output.Manager) error {
	if len(req.PackIDs) == 0 {
		return nil
	}
	engine := transfer.NewEngine(cfg.Transfer).WithObserver(displayObserver{mgr: mgr, peer: req.PeerName})
	session := irc.NewSession(cfg.IRC, engine)
	logger := utils.GetLogger("scheduler")
	logger.Info().Str("nick", session.Nick()).Str("bot", req.PeerName).
		Msgf("requesting %d pack(s)", len(req.PackIDs))
	err := session.Download(ctx, req)
	if err != nil && err != engine.Wait() {
		// the control channel itself failed, which no transfer row shows
		name := fmt.Sprintf("%s #%s", req.PeerName, strings.Join(req.PackIDs, ",#"))
		id := mgr.Register("", name, nil)
		mgr.ReportError(id, err)
	}
	return err
}
