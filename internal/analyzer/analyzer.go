// Package analyzer runs the analysis pipeline: it resolves inputs, discovers
// candidate files, admits them under the size and token limits and collects
// the statistics and version-control snapshot of the run.
package analyzer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/codedigest/internal/content"
	"github.com/temirov/codedigest/internal/discover"
	"github.com/temirov/codedigest/internal/resolve"
	"github.com/temirov/codedigest/internal/stats"
	"github.com/temirov/codedigest/internal/summary"
	"github.com/temirov/codedigest/internal/tokenizer"
	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
	"github.com/temirov/codedigest/internal/vcs"
)

const (
	logMessageFileMissing       = "file not found"
	logMessagePermissionDenied  = "permission denied"
	logMessageIsDirectory       = "path is a directory"
	logMessageReadFailed        = "cannot read file"
	logMessageFileTooLarge      = "file exceeds size limit"
	logMessageBudgetExhausted   = "token limit reached, skipping remaining files"
	logMessageAnalysisStarted   = "analysis started"
	logMessageAnalysisCompleted = "analysis completed"
	logMessageExplicitFile      = "explicit file admitted without filtering"
	logFieldPath                = "path"
	logFieldSize                = "size"
	logFieldLimit               = "limit"
	logFieldTokens              = "tokens"
	logFieldUsedTokens          = "used_tokens"
	logFieldCandidates          = "candidates"
	logFieldFiles               = "files"
	logFieldRemaining           = "remaining"
	logFieldPrimaryPath         = "primary_path"
)

// Analyzer executes analysis runs. Each Run owns its own statistics tracker and
// token budget, so one Analyzer may serve consecutive runs.
type Analyzer struct {
	logger   *zap.Logger
	reader   content.Reader
	provider vcs.Provider
	clock    func() time.Time
}

// NewAnalyzer constructs an Analyzer. A nil provider disables the version-control snapshot.
func NewAnalyzer(logger *zap.Logger, provider vcs.Provider) Analyzer {
	logger = utils.LoggerOrNop(logger)
	return Analyzer{
		logger:   logger,
		reader:   content.NewReader(logger),
		provider: provider,
		clock:    time.Now,
	}
}

type readOutcome struct {
	size      int64
	oversized bool
	content   string
	summary   string
	tokens    int
	err       error
}

// Run analyzes inputs with options and returns the result handed to the document
// assembler. Files are read in parallel but admitted strictly in discovery order;
// once the token limit is reached the remaining reads are cancelled. Per-file
// failures are logged and skipped. The only error returned is the cancellation
// of ctx.
func (analyzer Analyzer) Run(ctx context.Context, inputs []string, options types.AnalysisOptions) (types.AnalysisResult, error) {
	resolution := resolve.Resolve(inputs, analyzer.logger)
	analyzer.logger.Debug(logMessageAnalysisStarted, zap.String(logFieldPrimaryPath, resolution.PrimaryPath))

	candidates := discover.Discover(resolution, discover.Options{
		Include:       options.Include,
		Exclude:       options.Exclude,
		ExcludePaths:  options.ExcludePaths,
		RecentDays:    options.RecentDays,
		UseGitignore:  options.UseGitignore,
		UseIgnoreFile: options.UseIgnoreFile,
		Now:           analyzer.clock(),
	}, analyzer.logger)

	files, tracker, admitError := analyzer.admit(ctx, candidates, options)
	if admitError != nil {
		return types.AnalysisResult{}, admitError
	}

	var snapshot *types.VCSSnapshot
	if analyzer.provider != nil {
		snapshot = analyzer.provider.Snapshot(resolution.PrimaryPath)
	}
	analyzer.logger.Debug(logMessageAnalysisCompleted, zap.Int(logFieldCandidates, len(candidates)), zap.Int(logFieldFiles, len(files)))

	return types.AnalysisResult{
		PrimaryPath: resolution.PrimaryPath,
		VCS:         snapshot,
		Files:       files,
		Statistics:  tracker.Snapshot(),
		RecentDays:  options.RecentDays,
		Summary:     options.Summary,
		ShowTokens:  options.ShowTokens,
	}, nil
}

// admit dispatches reads to a bounded pool and consumes their outcomes in
// candidate order. Every candidate owns a buffered slot, so readers never wait
// on the consumer.
func (analyzer Analyzer) admit(ctx context.Context, candidates []discover.Candidate, options types.AnalysisOptions) ([]types.FileRecord, *stats.Tracker, error) {
	tracker := stats.NewTracker()
	budget := tokenizer.NewBudget(options.MaxTotalTokens)
	files := make([]types.FileRecord, 0, len(candidates))

	slots := make([]chan readOutcome, len(candidates))
	for index := range slots {
		slots[index] = make(chan readOutcome, 1)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		readers, readersCtx := errgroup.WithContext(groupCtx)
		readers.SetLimit(workerCount(options.Workers))
		for index, candidate := range candidates {
			if readersCtx.Err() != nil {
				break
			}
			readers.Go(func() error {
				slots[index] <- analyzer.read(readersCtx, candidate, options)
				return nil
			})
		}
		return readers.Wait()
	})

	group.Go(func() error {
		for index, candidate := range candidates {
			var outcome readOutcome
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case outcome = <-slots[index]:
			}
			if outcome.err != nil {
				analyzer.reportReadError(candidate, outcome.err)
				continue
			}
			if outcome.oversized {
				analyzer.logger.Debug(logMessageFileTooLarge,
					zap.String(logFieldPath, candidate.DisplayPath),
					zap.String(logFieldSize, utils.FormatFileSize(outcome.size)),
					zap.String(logFieldLimit, utils.FormatFileSize(options.MaxFileSize)),
				)
				continue
			}
			if !budget.Fits(outcome.tokens) {
				analyzer.logger.Debug(logMessageBudgetExhausted,
					zap.String(logFieldPath, candidate.DisplayPath),
					zap.Int(logFieldTokens, outcome.tokens),
					zap.Int(logFieldUsedTokens, budget.Used()),
					zap.Int(logFieldLimit, budget.Limit()),
					zap.Int(logFieldRemaining, len(candidates)-index),
				)
				cancel()
				return nil
			}
			budget.Admit(outcome.tokens)
			if candidate.Explicit {
				analyzer.logger.Debug(logMessageExplicitFile, zap.String(logFieldPath, candidate.DisplayPath))
			}
			record := types.FileRecord{
				Path:      candidate.DisplayPath,
				Size:      outcome.size,
				LineCount: content.CountLines(outcome.content),
				Content:   outcome.content,
				Summary:   outcome.summary,
			}
			tracker.TrackFile(record)
			files = append(files, record)
		}
		return nil
	})

	if waitError := group.Wait(); waitError != nil {
		return nil, nil, waitError
	}
	return files, tracker, nil
}

// read loads one candidate. In summary mode the summary is built from the full file
// text, before truncation.
func (analyzer Analyzer) read(ctx context.Context, candidate discover.Candidate, options types.AnalysisOptions) readOutcome {
	if ctx.Err() != nil {
		return readOutcome{err: ctx.Err()}
	}
	info, statError := os.Stat(candidate.AbsolutePath)
	if statError != nil {
		return readOutcome{err: statError}
	}
	if info.IsDir() {
		return readOutcome{err: &fs.PathError{Op: "read", Path: candidate.AbsolutePath, Err: syscall.EISDIR}}
	}
	size := info.Size()
	if options.MaxFileSize > 0 && size > options.MaxFileSize {
		return readOutcome{size: size, oversized: true}
	}
	loaded, readError := analyzer.reader.Read(candidate.AbsolutePath, candidate.DisplayPath, size)
	if readError != nil {
		return readOutcome{err: readError}
	}
	outcome := readOutcome{size: size, content: loaded.Text, tokens: tokenizer.Estimate(loaded.Text)}
	if options.Summary {
		outcome.summary = summary.Render(summary.Summarize(candidate.DisplayPath, loaded.Source))
	}
	return outcome
}

func (analyzer Analyzer) reportReadError(candidate discover.Candidate, readError error) {
	analyzer.logger.Warn(classifyReadError(readError), zap.String(logFieldPath, candidate.DisplayPath), zap.Error(readError))
}

func classifyReadError(readError error) string {
	switch {
	case errors.Is(readError, fs.ErrNotExist):
		return logMessageFileMissing
	case errors.Is(readError, fs.ErrPermission):
		return logMessagePermissionDenied
	case errors.Is(readError, syscall.EISDIR):
		return logMessageIsDirectory
	default:
		return logMessageReadFailed
	}
}

func workerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}
