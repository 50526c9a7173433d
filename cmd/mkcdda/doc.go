// Package main hosts the mkcdda CLI entrypoint and command graph.
//
// Invoked with audio files, the root command converts them into disc.bin and
// disc.cue in the working directory. The inspect subcommand reports what each
// file contains without writing anything, and the config subcommands scaffold
// and print the configuration file.
//
// Keep this package lean: conversion logic lives in internal/workflow and the
// packages it drives; commands here only resolve configuration, build a
// logger, and render results.
package main
