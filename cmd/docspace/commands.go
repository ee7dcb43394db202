package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/docspace/workspace"
)

func paginationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "cursor", Usage: "start cursor from a previous page"},
		&cli.IntFlag{Name: "page-size", Usage: "maximum results per page"},
	}
}

func pagination(cmd *cli.Command) workspace.Pagination {
	return workspace.Pagination{
		StartCursor: cmd.String("cursor"),
		PageSize:    int(cmd.Int("page-size")),
	}
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := cmd.Args().First()
	if v == "" {
		return "", fmt.Errorf("%s argument is required", name)
	}
	return v, nil
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "search the workspace",
		ArgsUsage: "[query]",
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{Name: "filter", Usage: "filter as a JSON object"},
			&cli.StringFlag{Name: "sort", Usage: "sort as a JSON object"},
		}, paginationFlags()...), commonFlags()...),
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			filter, err := jsonFlag(cmd, "filter")
			if err != nil {
				return err
			}
			sort, err := jsonFlag(cmd, "sort")
			if err != nil {
				return err
			}

			res, err := a.client.Search(ctx, workspace.SearchRequest{
				Query:       cmd.Args().First(),
				Filter:      filter,
				Sort:        sort,
				StartCursor: cmd.String("cursor"),
				PageSize:    int(cmd.Int("page-size")),
			}, callOpts(cmd)...)
			if err != nil {
				return err
			}
			return emit(cmd, res)
		}),
	}
}

func pageCommand() *cli.Command {
	return &cli.Command{
		Name:  "page",
		Usage: "read and write pages",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "retrieve one page",
				ArgsUsage: "<page-id>",
				Flags:     commonFlags(),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "page-id")
					if err != nil {
						return err
					}
					page, err := a.client.GetPage(ctx, id, callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, page)
				}),
			},
			{
				Name:  "create",
				Usage: "create a page under a database or page parent",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "parent-db", Usage: "parent database id"},
					&cli.StringFlag{Name: "parent-page", Usage: "parent page id"},
					&cli.StringFlag{Name: "properties", Usage: "page properties as a JSON object"},
					&cli.StringFlag{Name: "children", Usage: "initial content blocks as a JSON array"},
					queryFlag(),
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					parent, err := parentFromFlags(cmd)
					if err != nil {
						return err
					}
					props, err := jsonObjectFlag(cmd, "properties")
					if err != nil {
						return err
					}
					children, err := jsonArrayFlag(cmd, "children")
					if err != nil {
						return err
					}

					page, err := a.client.CreatePage(ctx, workspace.CreatePageRequest{
						Parent:     parent,
						Properties: props,
						Children:   children,
					})
					if err != nil {
						return err
					}
					return emit(cmd, page)
				}),
			},
			{
				Name:      "update",
				Usage:     "patch page properties",
				ArgsUsage: "<page-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "properties", Usage: "properties to set as a JSON object"},
					queryFlag(),
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "page-id")
					if err != nil {
						return err
					}
					props, err := jsonObjectFlag(cmd, "properties")
					if err != nil {
						return err
					}

					page, err := a.client.UpdatePage(ctx, id, workspace.UpdatePageRequest{
						Properties: props,
					})
					if err != nil {
						return err
					}
					return emit(cmd, page)
				}),
			},
			{
				Name:      "archive",
				Usage:     "archive a page",
				ArgsUsage: "<page-id>",
				Flags:     []cli.Flag{queryFlag()},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "page-id")
					if err != nil {
						return err
					}
					page, err := a.client.ArchivePage(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, page)
				}),
			},
		},
	}
}

func parentFromFlags(cmd *cli.Command) (workspace.Parent, error) {
	db := cmd.String("parent-db")
	page := cmd.String("parent-page")
	switch {
	case db != "" && page != "":
		return workspace.Parent{}, fmt.Errorf("--parent-db and --parent-page are mutually exclusive")
	case db != "":
		return workspace.Parent{Type: "database_id", DatabaseID: db}, nil
	case page != "":
		return workspace.Parent{Type: "page_id", PageID: page}, nil
	default:
		return workspace.Parent{}, fmt.Errorf("one of --parent-db or --parent-page is required")
	}
}

func databaseCommand() *cli.Command {
	return &cli.Command{
		Name:    "db",
		Usage:   "read and query databases",
		Aliases: []string{"database"},
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "retrieve a database schema",
				ArgsUsage: "<database-id>",
				Flags:     commonFlags(),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "database-id")
					if err != nil {
						return err
					}
					db, err := a.client.GetDatabase(ctx, id, callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, db)
				}),
			},
			{
				Name:      "query",
				Usage:     "query database rows",
				ArgsUsage: "<database-id>",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{Name: "filter", Usage: "filter as a JSON object"},
					&cli.StringFlag{Name: "sorts", Usage: "sorts as a JSON array"},
				}, paginationFlags()...), commonFlags()...),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "database-id")
					if err != nil {
						return err
					}
					filter, err := jsonFlag(cmd, "filter")
					if err != nil {
						return err
					}
					sorts, err := jsonFlag(cmd, "sorts")
					if err != nil {
						return err
					}

					res, err := a.client.QueryDatabase(ctx, id, workspace.QueryDatabaseRequest{
						Filter:      filter,
						Sorts:       sorts,
						StartCursor: cmd.String("cursor"),
						PageSize:    int(cmd.Int("page-size")),
					}, callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, res)
				}),
			},
			{
				Name:      "create-row",
				Usage:     "insert a row (page) into a database",
				ArgsUsage: "<database-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "properties", Usage: "row properties as a JSON object"},
					queryFlag(),
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "database-id")
					if err != nil {
						return err
					}
					props, err := jsonObjectFlag(cmd, "properties")
					if err != nil {
						return err
					}

					page, err := a.client.CreateDatabaseRow(ctx, id, workspace.CreatePageRequest{
						Properties: props,
					})
					if err != nil {
						return err
					}
					return emit(cmd, page)
				}),
			},
		},
	}
}

func blockCommand() *cli.Command {
	return &cli.Command{
		Name:  "block",
		Usage: "read and write content blocks",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "retrieve one block",
				ArgsUsage: "<block-id>",
				Flags:     commonFlags(),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "block-id")
					if err != nil {
						return err
					}
					block, err := a.client.GetBlock(ctx, id, callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, block)
				}),
			},
			{
				Name:      "children",
				Usage:     "list children of a block or page",
				ArgsUsage: "<block-id>",
				Flags:     append(paginationFlags(), commonFlags()...),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "block-id")
					if err != nil {
						return err
					}
					list, err := a.client.GetBlockChildren(ctx, id, pagination(cmd), callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, list)
				}),
			},
			{
				Name:      "append",
				Usage:     "append content under a block or page",
				ArgsUsage: "<block-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "children", Usage: "blocks to append as a JSON array", Required: true},
					queryFlag(),
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "block-id")
					if err != nil {
						return err
					}
					children, err := jsonArrayFlag(cmd, "children")
					if err != nil {
						return err
					}

					list, err := a.client.AppendBlockChildren(ctx, id, workspace.AppendBlockChildrenRequest{
						Children: children,
					})
					if err != nil {
						return err
					}
					return emit(cmd, list)
				}),
			},
			{
				Name:      "delete",
				Usage:     "archive a block",
				ArgsUsage: "<block-id>",
				Flags:     []cli.Flag{queryFlag()},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "block-id")
					if err != nil {
						return err
					}
					block, err := a.client.DeleteBlock(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, block)
				}),
			},
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "read workspace members",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list workspace members",
				Flags: append(paginationFlags(), commonFlags()...),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					list, err := a.client.ListUsers(ctx, pagination(cmd), callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, list)
				}),
			},
			{
				Name:      "get",
				Usage:     "retrieve one member",
				ArgsUsage: "<user-id>",
				Flags:     commonFlags(),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "user-id")
					if err != nil {
						return err
					}
					user, err := a.client.GetUser(ctx, id, callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, user)
				}),
			},
			{
				Name:  "me",
				Usage: "show the identity behind the token",
				Flags: commonFlags(),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					user, err := a.client.GetSelf(ctx, callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, user)
				}),
			},
		},
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: "read and write comments",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "list comments under a block or page",
				ArgsUsage: "<block-id>",
				Flags:     append(paginationFlags(), commonFlags()...),
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					id, err := requireArg(cmd, "block-id")
					if err != nil {
						return err
					}
					list, err := a.client.GetComments(ctx, id, pagination(cmd), callOpts(cmd)...)
					if err != nil {
						return err
					}
					return emit(cmd, list)
				}),
			},
			{
				Name:  "add",
				Usage: "add a comment to a page, block, or discussion",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "page", Usage: "parent page id"},
					&cli.StringFlag{Name: "block", Usage: "parent block id"},
					&cli.StringFlag{Name: "discussion", Usage: "existing discussion id"},
					&cli.StringFlag{Name: "text", Usage: "comment text", Required: true},
					queryFlag(),
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					req, err := commentRequest(cmd)
					if err != nil {
						return err
					}
					comment, err := a.client.CreateComment(ctx, req)
					if err != nil {
						return err
					}
					return emit(cmd, comment)
				}),
			},
		},
	}
}

func commentRequest(cmd *cli.Command) (workspace.CreateCommentRequest, error) {
	text, err := json.Marshal(cmd.String("text"))
	if err != nil {
		return workspace.CreateCommentRequest{}, err
	}
	req := workspace.CreateCommentRequest{
		RichText: json.RawMessage(`[{"type":"text","text":{"content":` + string(text) + `}}]`),
	}

	page := cmd.String("page")
	block := cmd.String("block")
	discussion := cmd.String("discussion")
	switch {
	case page != "":
		req.Parent = &workspace.Parent{Type: "page_id", PageID: page}
	case block != "":
		req.Parent = &workspace.Parent{Type: "block_id", BlockID: block}
	case discussion != "":
		req.DiscussionID = discussion
	default:
		return req, fmt.Errorf("one of --page, --block, or --discussion is required")
	}
	return req, nil
}

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "inspect and control the read cache",
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "show hit/miss counters and table size",
				Flags: []cli.Flag{queryFlag()},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					return emit(cmd, a.client.Cache().Stats())
				}),
			},
			{
				Name:  "clear",
				Usage: "drop every cached entry and reset counters",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
					removed := a.client.Cache().Clear(ctx)
					fmt.Printf("cleared %d entries\n", removed)
					return nil
				}),
			},
		},
	}
}
