// Package loadengine implements the Steady-State Load Engine: it holds
// exactly K requests in flight against the Channel-Pool Client for a fixed
// duration, accumulating one model.Outcome per call.
package loadengine
