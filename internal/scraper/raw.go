package scraper

// RawItem is the untyped snapshot of one timeline container, captured in a
// single DOM pass. All parsing happens on the Go side so skip decisions stay
// visible in one place.
type RawItem struct {
	Permalink   string     `json:"permalink"`
	DateTitle   string     `json:"dateTitle"`
	HasBody     bool       `json:"hasBody"`
	Body        string     `json:"body"`
	IsRetweet   bool       `json:"isRetweet"`
	IsQuote     bool       `json:"isQuote"`
	IsReply     bool       `json:"isReply"`
	ReplyToHref string     `json:"replyToHref"`
	URLs        []string   `json:"urls"`
	Mentions    []string   `json:"mentions"`
	Images      []RawImage `json:"images"`
	VideoCount  int        `json:"videoCount"`
	Comments    string     `json:"comments"`
	Retweets    string     `json:"retweets"`
	Likes       string     `json:"likes"`
}

// RawImage is one image attachment as found in the markup.
type RawImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// captureItemsJS snapshots every rendered timeline item in DOM order.
// External anchors carrying a class are styled card embeds rather than body
// links and are skipped. Video attachments are recorded by presence only.
const captureItemsJS = `
(function() {
	const results = [];
	document.querySelectorAll('.timeline-item').forEach(el => {
		try {
			const dateLink = el.querySelector('.tweet-date a');
			const body = el.querySelector('.tweet-content');
			const replyTo = el.querySelector('.replying-to');
			const replyLink = replyTo ? replyTo.querySelector('a') : null;

			const urls = [];
			const mentions = [];
			if (body) {
				body.querySelectorAll("a[href^='http']").forEach(a => {
					if (a.getAttribute('class')) return;
					const href = a.getAttribute('href');
					if (href) urls.push(href);
				});
				body.querySelectorAll("a[href^='/'][href*='@']").forEach(a => {
					const text = (a.textContent || '').trim();
					if (text.startsWith('@')) mentions.push(text);
				});
			}

			const images = [];
			el.querySelectorAll('.attachment.image img').forEach(img => {
				images.push({
					src: img.getAttribute('src') || '',
					alt: img.getAttribute('alt') || ''
				});
			});

			const stat = sel => {
				const icon = el.querySelector(sel);
				if (!icon || !icon.parentElement) return '';
				return (icon.parentElement.textContent || '').trim();
			};

			results.push({
				permalink: dateLink ? (dateLink.getAttribute('href') || '') : '',
				dateTitle: dateLink ? (dateLink.getAttribute('title') || '') : '',
				hasBody: body !== null,
				body: body ? (body.innerText || '') : '',
				isRetweet: el.querySelector('.retweet-header') !== null,
				isQuote: el.querySelector('.quote') !== null,
				isReply: replyTo !== null,
				replyToHref: replyLink ? (replyLink.getAttribute('href') || '') : '',
				urls: urls,
				mentions: mentions,
				images: images,
				videoCount: el.querySelectorAll('.attachment.video').length,
				comments: stat('.icon-comment'),
				retweets: stat('.icon-retweet'),
				likes: stat('.icon-heart')
			});
		} catch (e) {
			// skip containers that throw mid-read
		}
	});
	return results;
})()
`

// clickShowMoreJS clicks the pagination link when one is rendered, reporting
// whether it found one. The top-of-page "Load newest" control does not match.
const clickShowMoreJS = `
(function() {
	const links = document.querySelectorAll('.show-more a');
	for (const a of links) {
		if ((a.textContent || '').includes('Load more')) {
			a.click();
			return true;
		}
	}
	return false;
})()
`
