// Package integrationtests drives the reference host end to end: schedule
// files on disk, declared systems, build and ticks.
package integrationtests
