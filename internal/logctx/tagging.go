package logctx

import (
	"context"
	"jacl/internal/global"
)

// Append new tag to tag list.
// It performs copy-on-write to preserve immutability
func AppendCtxTag(ctx context.Context, newTag string) (newCtx context.Context) {
	tags := append(GetTagList(ctx), newTag)
	newCtx = context.WithValue(ctx, global.LogTagsKey, tags)
	return
}

// Removes last index of tag list.
// Also uses copy-on-write
func RemoveLastCtxTag(ctx context.Context) (newCtx context.Context) {
	tags := GetTagList(ctx)
	if len(tags) > 0 {
		tags = tags[:len(tags)-1]
	}
	newCtx = context.WithValue(ctx, global.LogTagsKey, tags)
	return
}

// Overwrites entire tag list with given list
func OverwriteCtxTag(ctx context.Context, newList []string) (newCtx context.Context) {
	tags := append([]string(nil), newList...)
	newCtx = context.WithValue(ctx, global.LogTagsKey, tags)
	return
}

// Extracts a copy of the tag list from context or returns empty list
func GetTagList(ctx context.Context) (tags []string) {
	stored, validAssert := ctx.Value(global.LogTagsKey).([]string)
	if !validAssert {
		tags = []string{}
		return
	}
	tags = append(make([]string, 0, len(stored)+1), stored...)
	return
}
